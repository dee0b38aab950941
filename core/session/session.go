// Package session models the client session as an explicit state machine:
// which school and guardian are active and which screen is displayed.
// Sessions live only for a client's lifetime and are never persisted; a
// fresh client always starts at SelectingSchool even though the directory
// collections survive restarts.
package session

import "errors"

type State string

const (
	SelectingSchool    State = "selecting_school"
	LoggingIn          State = "logging_in"
	GuardianHome       State = "guardian_home"
	SchoolOperatorHome State = "school_operator_home"
	PlatformAdminHome  State = "platform_admin_home"
)

var ErrInvalidTransition = errors.New("invalid session transition")

// Session is a value: every transition returns the next session and leaves
// the receiver untouched.
type Session struct {
	State      State  `json:"state"`
	SchoolID   string `json:"school_id,omitempty"`
	GuardianID string `json:"guardian_id,omitempty"`
}

func New() Session {
	return Session{State: SelectingSchool}
}

// Valid reports whether st is a known state.
func Valid(st State) bool {
	switch st {
	case SelectingSchool, LoggingIn, GuardianHome, SchoolOperatorHome, PlatformAdminHome:
		return true
	}
	return false
}

// SelectSchool moves SelectingSchool → LoggingIn for a picked or newly
// created school.
func (s Session) SelectSchool(schoolID string) (Session, error) {
	if s.State != SelectingSchool || schoolID == "" {
		return s, ErrInvalidTransition
	}
	return Session{State: LoggingIn, SchoolID: schoolID}, nil
}

// Login moves LoggingIn → GuardianHome after a successful authentication.
func (s Session) Login(guardianID string) (Session, error) {
	if s.State != LoggingIn || guardianID == "" {
		return s, ErrInvalidTransition
	}
	return Session{State: GuardianHome, SchoolID: s.SchoolID, GuardianID: guardianID}, nil
}

// SwitchRole toggles GuardianHome ⇄ SchoolOperatorHome for the same school.
// This models a shared-device kiosk, not per-user access control.
func (s Session) SwitchRole() (Session, error) {
	switch s.State {
	case GuardianHome:
		return Session{State: SchoolOperatorHome, SchoolID: s.SchoolID, GuardianID: s.GuardianID}, nil
	case SchoolOperatorHome:
		return Session{State: GuardianHome, SchoolID: s.SchoolID, GuardianID: s.GuardianID}, nil
	}
	return s, ErrInvalidTransition
}

// Logout returns to SelectingSchool from anywhere. Never fails.
func (s Session) Logout() Session {
	return New()
}

// EnterAdmin moves SelectingSchool → PlatformAdminHome. The hidden
// administrative entry point is independent of school selection.
func (s Session) EnterAdmin() (Session, error) {
	if s.State != SelectingSchool {
		return s, ErrInvalidTransition
	}
	return Session{State: PlatformAdminHome}, nil
}
