package pickup

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/school"
)

var (
	ErrNotFound = errors.New("notification not found")

	// ErrNoOperator: release attempted without picking an operator from the
	// school's staff roster first.
	ErrNoOperator = errors.New("Selecione o Operador primeiro!")

	ErrAlreadyActive = errors.New("guardian already has an active notification")

	errUnknownStudentText = "student does not belong to this guardian"
)

type (
	Repository interface {
		// AppendNotification performs load-append-save in one store update.
		AppendNotification(n Notification) (Notification, error)
		QueryQueueBySchool(schoolID string) ([]Notification, error)
		GetNotificationByID(id string) (Notification, error)
		// ReplaceNotification swaps the queue entry with the same id.
		ReplaceNotification(n Notification) (Notification, error)
		// ReleaseNotification removes the entry from the queue and prepends
		// rel to the history log in a single store update: a move, not a copy.
		ReleaseNotification(id string, rel Release) (Release, error)
		// QueryHistoryBySchool returns release records, newest first.
		QueryHistoryBySchool(schoolID string) ([]Release, error)
	}

	Service struct {
		repo   Repository
		policy DuplicatePolicy
	}
)

func NewService(repo Repository, policy DuplicatePolicy) *Service {
	return &Service{repo: repo, policy: policy}
}

// Announce creates one notification covering all selected students, routed
// to the gate configured for the first student's grade.
func (svc *Service) Announce(g guardian.Guardian, sch school.School, ann Announcement) (Notification, error) {
	selected, err := selectStudents(g, ann.StudentIDs)
	if err != nil {
		return Notification{}, err
	}

	if svc.policy != DuplicateAllow {
		existing, err := svc.activeByGuardian(g)
		if err != nil {
			return Notification{}, err
		}
		if existing != nil {
			if svc.policy == DuplicateReject {
				return Notification{}, ErrAlreadyActive
			}
			return svc.merge(*existing, selected)
		}
	}

	names := make([]string, 0, len(selected))
	grades := make([]string, 0, len(selected))
	for _, s := range selected {
		names = append(names, s.Name)
		grades = append(grades, s.Grade)
	}

	n := Notification{
		ID:           uuid.New().String(),
		SchoolID:     g.SchoolID,
		GuardianID:   g.ID,
		GuardianName: g.Name,
		Relationship: g.Relationship,
		StudentNames: names,
		Grades:       grades,
		GateName:     sch.GateNameForGrade(selected[0].Grade),
		Note:         ann.Note,
		CreatedAt:    time.Now().UTC(),
		Status:       ann.Status,
	}
	return svc.repo.AppendNotification(n)
}

// Queue returns the school's active notifications, oldest first.
func (svc *Service) Queue(schoolID string) ([]Notification, error) {
	return svc.repo.QueryQueueBySchool(schoolID)
}

// ActiveFor returns the queue entries that concern any of the guardian's
// students, whichever family member announced them.
func (svc *Service) ActiveFor(g guardian.Guardian) ([]Notification, error) {
	queue, err := svc.repo.QueryQueueBySchool(g.SchoolID)
	if err != nil {
		return nil, errors.Wrap(err, "querying queue")
	}
	names := g.StudentNames()
	visible := make([]Notification, 0)
	for _, n := range queue {
		if n.Concerns(names) {
			visible = append(visible, n)
		}
	}
	return visible, nil
}

// Release closes out a queue entry: the operator must be on the school's
// staff roster, the entry is removed from the queue and exactly one history
// record is appended.
func (svc *Service) Release(sch school.School, notifID, operatorID, observation string) (Release, error) {
	op, ok := sch.StaffByID(operatorID)
	if !ok {
		return Release{}, ErrNoOperator
	}

	n, err := svc.repo.GetNotificationByID(notifID)
	if err != nil {
		return Release{}, err
	}

	rel := Release{
		ID:           uuid.New().String(),
		SchoolID:     n.SchoolID,
		StudentNames: n.StudentNames,
		GateName:     n.GateName,
		GuardianName: n.GuardianName,
		OperatorName: op.Name,
		Observation:  observation,
		ReleasedAt:   time.Now().UTC(),
	}
	return svc.repo.ReleaseNotification(n.ID, rel)
}

// History returns the school's release log, newest first.
func (svc *Service) History(schoolID string) ([]Release, error) {
	return svc.repo.QueryHistoryBySchool(schoolID)
}

// HistoryFor filters the school's release log down to the guardian's students.
func (svc *Service) HistoryFor(g guardian.Guardian) ([]Release, error) {
	hist, err := svc.repo.QueryHistoryBySchool(g.SchoolID)
	if err != nil {
		return nil, errors.Wrap(err, "querying history")
	}
	names := g.StudentNames()
	mine := make([]Release, 0)
	for _, rel := range hist {
		if rel.Concerns(names) {
			mine = append(mine, rel)
		}
	}
	return mine, nil
}

func (svc *Service) activeByGuardian(g guardian.Guardian) (*Notification, error) {
	queue, err := svc.repo.QueryQueueBySchool(g.SchoolID)
	if err != nil {
		return nil, errors.Wrap(err, "querying queue")
	}
	for i := range queue {
		if queue[i].GuardianID == g.ID && queue[i].Active() {
			return &queue[i], nil
		}
	}
	return nil, nil
}

// merge folds newly selected students into the guardian's existing entry,
// skipping students already on it.
func (svc *Service) merge(n Notification, selected []guardian.StudentInfo) (Notification, error) {
	for _, s := range selected {
		if n.Concerns([]string{s.Name}) {
			continue
		}
		n.StudentNames = append(n.StudentNames, s.Name)
		n.Grades = append(n.Grades, s.Grade)
	}
	return svc.repo.ReplaceNotification(n)
}

func selectStudents(g guardian.Guardian, ids []string) ([]guardian.StudentInfo, error) {
	byID := make(map[string]guardian.StudentInfo, len(g.Students))
	for _, s := range g.Students {
		byID[s.ID] = s
	}
	selected := make([]guardian.StudentInfo, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, core.NewValidationError(nil, core.FieldError{
				Field: "student_ids",
				Error: errUnknownStudentText,
			})
		}
		selected = append(selected, s)
	}
	return selected, nil
}
