package guardian

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core"
)

var (
	ErrNotFound = errors.New("guardian not found")

	// ErrAccessDenied is the single generic login failure: wrong password,
	// wrong school and unknown id are deliberately indistinguishable.
	ErrAccessDenied = errors.New("Acesso negado. CPF/Senha incorretos ou escola diferente.")

	ErrNotMaster = errors.New("only a master guardian can manage authorized adults")
)

type (
	Repository interface {
		// AppendGuardian performs the whole load-append-save cycle in a
		// single store update.
		AppendGuardian(g Guardian) (Guardian, error)
		QueryAllGuardians() ([]Guardian, error)
		QueryGuardiansBySchool(schoolID string) ([]Guardian, error)
		GetGuardianByID(id string) (Guardian, error)
		DeleteGuardianByID(id string) error
	}

	Service struct {
		repo       Repository
		welcomeSvc core.WelcomeService
	}
)

func NewService(repo Repository, welcomeSvc core.WelcomeService) *Service {
	return &Service{repo: repo, welcomeSvc: welcomeSvc}
}

// Register stores a new guardian profile and returns it along with the
// welcome message. The message is generated after the record is persisted so
// a generation failure can never undo a completed registration.
func (svc *Service) Register(ctx context.Context, ng NewGuardian) (Guardian, string, error) {
	g := Guardian{
		ID:           uuid.New().String(),
		SchoolID:     ng.SchoolID,
		Name:         ng.Name,
		NationalID:   ng.NationalID,
		Relationship: ng.Relationship,
		Phone:        ng.Phone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := g.SetPassword(ng.Password); err != nil {
		return Guardian{}, "", errors.Wrap(err, "setting password")
	}
	g.Students = make([]StudentInfo, 0, len(ng.Students))
	for _, ns := range ng.Students {
		g.Students = append(g.Students, StudentInfo{
			ID:    uuid.New().String(),
			Name:  ns.Name,
			Grade: ns.Grade,
			Shift: ns.Shift,
		})
	}

	g, err := svc.repo.AppendGuardian(g)
	if err != nil {
		return Guardian{}, "", errors.Wrap(err, "appending guardian")
	}

	var msg string
	if svc.welcomeSvc != nil {
		msg = svc.welcomeSvc.Generate(ctx, core.WelcomeRequest{
			GuardianName: g.Name,
			StudentNames: g.StudentNames(),
		})
	}
	return g, msg, nil
}

// Authenticate resolves a login attempt. Any miss yields ErrAccessDenied.
func (svc *Service) Authenticate(l Login) (Guardian, error) {
	gs, err := svc.repo.QueryGuardiansBySchool(l.SchoolID)
	if err != nil {
		return Guardian{}, errors.Wrap(err, "querying guardians")
	}
	for _, g := range gs {
		if g.NationalID != l.NationalID {
			continue
		}
		if g.CheckPassword(l.Password) == nil {
			return g, nil
		}
	}
	return Guardian{}, ErrAccessDenied
}

func (svc *Service) GetByID(id string) (Guardian, error) {
	return svc.repo.GetGuardianByID(id)
}

func (svc *Service) QueryBySchool(schoolID string) ([]Guardian, error) {
	return svc.repo.QueryGuardiansBySchool(schoolID)
}

// AddAuthorized registers an adult authorized to pick up the master's
// children. The student list is cloned by value, keeping the master's
// student ids so the profiles stay linked as one family.
func (svc *Service) AddAuthorized(ctx context.Context, master Guardian, na NewAuthorized) (Guardian, error) {
	if !master.IsMaster() {
		return Guardian{}, ErrNotMaster
	}

	g := Guardian{
		ID:           uuid.New().String(),
		SchoolID:     master.SchoolID,
		Name:         na.Name,
		NationalID:   na.NationalID,
		Relationship: na.Label(),
		Students:     append([]StudentInfo(nil), master.Students...),
		CreatedAt:    time.Now().UTC(),
	}
	if err := g.SetPassword(na.Password); err != nil {
		return Guardian{}, errors.Wrap(err, "setting password")
	}
	return svc.repo.AppendGuardian(g)
}

// Authorized lists the non-master profiles of the master's family: same
// school, at least one shared student id, non-master relationship. The
// master itself never shows up in its own list.
func (svc *Service) Authorized(master Guardian) ([]Guardian, error) {
	if !master.IsMaster() {
		return nil, ErrNotMaster
	}
	gs, err := svc.repo.QueryGuardiansBySchool(master.SchoolID)
	if err != nil {
		return nil, errors.Wrap(err, "querying guardians")
	}
	authorized := make([]Guardian, 0)
	for _, g := range gs {
		if g.IsMaster() || !master.SharesStudentWith(g) {
			continue
		}
		authorized = append(authorized, g)
	}
	return authorized, nil
}

// RemoveAuthorized deletes an authorized profile outright. No revocation
// history is kept. The target must be in the master's authorized list.
func (svc *Service) RemoveAuthorized(master Guardian, id string) error {
	authorized, err := svc.Authorized(master)
	if err != nil {
		return err
	}
	for _, g := range authorized {
		if g.ID == id {
			return svc.repo.DeleteGuardianByID(id)
		}
	}
	return ErrNotFound
}
