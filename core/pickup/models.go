package pickup

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/escolaexpress/backend/core"
)

type Status string

const (
	StatusApproaching Status = "approaching"
	StatusArrived     Status = "arrived"
	StatusReleased    Status = "released"
)

// DuplicatePolicy decides what a second announcement by a guardian who
// already has an active notification does.
type DuplicatePolicy string

const (
	// DuplicateReject refuses the second announcement (default).
	DuplicateReject DuplicatePolicy = "reject"
	// DuplicateAllow lets duplicate queue entries pile up.
	DuplicateAllow DuplicatePolicy = "allow"
	// DuplicateMerge folds the newly selected students into the existing entry.
	DuplicateMerge DuplicatePolicy = "merge"
)

func ParseDuplicatePolicy(s string) DuplicatePolicy {
	switch DuplicatePolicy(s) {
	case DuplicateAllow:
		return DuplicateAllow
	case DuplicateMerge:
		return DuplicateMerge
	default:
		return DuplicateReject
	}
}

type (
	// Notification is one guardian's announcement that they are at (or near)
	// the school to pick up the listed students. Guardian and gate fields are
	// snapshots taken at announcement time, not live references.
	// StudentNames and Grades are parallel: same index, same student.
	Notification struct {
		ID           string    `json:"id"`
		SchoolID     string    `json:"school_id"`
		GuardianID   string    `json:"guardian_id"`
		GuardianName string    `json:"guardian_name"`
		Relationship string    `json:"relationship"`
		StudentNames []string  `json:"student_names"`
		Grades       []string  `json:"grades"`
		GateName     string    `json:"gate_name"`
		Note         string    `json:"note,omitempty"`
		CreatedAt    time.Time `json:"created_at"` // UTC
		Status       Status    `json:"status"`
	}

	// Release is the permanent record of a confirmed hand-off. Immutable;
	// the history log is append-only, newest first.
	Release struct {
		ID           string    `json:"id"`
		SchoolID     string    `json:"school_id"`
		StudentNames []string  `json:"student_names"`
		GateName     string    `json:"gate_name"`
		GuardianName string    `json:"guardian_name"`
		OperatorName string    `json:"operator_name"`
		Observation  string    `json:"observation,omitempty"`
		ReleasedAt   time.Time `json:"released_at"` // UTC
	}
)

// Active reports whether the notification still sits in the live queue.
func (n Notification) Active() bool {
	return n.Status != StatusReleased
}

// sameStudent decides whether two student references point at the same
// child. Matching is by name string only: profiles duplicate students by
// value, so the name is the one key shared across families' devices. Two
// unrelated students with identical names will cross-match; keep every
// caller on this function so a switch to id-based matching is one change.
func sameStudent(a, b string) bool {
	return a == b
}

// Concerns reports whether the notification covers any of the given
// students. This drives cross-guardian visibility: every adult of a family
// sees an active pickup for their children, whoever announced it.
func (n Notification) Concerns(studentNames []string) bool {
	for _, nn := range n.StudentNames {
		for _, sn := range studentNames {
			if sameStudent(nn, sn) {
				return true
			}
		}
	}
	return false
}

// Concerns reports whether the release covers any of the given students.
func (r Release) Concerns(studentNames []string) bool {
	for _, rn := range r.StudentNames {
		for _, sn := range studentNames {
			if sameStudent(rn, sn) {
				return true
			}
		}
	}
	return false
}

// Announcement is a guardian's pickup declaration: which of their students
// (by id) and an optional note to the gate.
type Announcement struct {
	StudentIDs []string `json:"student_ids" validate:"required,min=1"`
	Note       string   `json:"note"`
	// Status defaults to "arrived"; "approaching" is accepted for clients
	// announcing on the way.
	Status Status `json:"status" validate:"omitempty,oneof=approaching arrived"`
}

func (a *Announcement) Validate(validate *validator.Validate) error {
	a.Note = core.CleanString(a.Note)
	if a.Status == "" {
		a.Status = StatusArrived
	}
	return validate.Struct(a)
}
