package pickup_test

import (
	"testing"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/pickup"
	"github.com/escolaexpress/backend/core/school"
	"github.com/escolaexpress/backend/storage/inmem"
	testutil "github.com/escolaexpress/backend/tests"
)

func newSchool(t *testing.T, repo school.Repository) school.School {
	return testutil.CreateSchool(t, repo, "Sunrise Academy", "Centro ⭐",
		[]school.Gate{{ID: "gate-A", Name: "Main Gate"}},
		map[string]string{"1º Ano Fundamental": "gate-A"},
		[]school.Staff{{ID: "op-1", Name: "Seu Jorge"}},
	)
}

func TestAnnounce(t *testing.T) {
	db := inmem.NewDB()
	sch := newSchool(t, inmem.NewSchoolRepository(db))
	repo := inmem.NewPickupRepository(db)
	svc := pickup.NewService(repo, pickup.DuplicateReject)

	students := append(
		testutil.Students("1º Ano Fundamental", guardian.ShiftMorning, "Ana Silva"),
		testutil.Students("3º Ano Fundamental", guardian.ShiftAfternoon, "João Silva")...,
	)
	maria := testutil.CreateGuardian(t, inmem.NewGuardianRepository(db),
		sch.ID, "Maria Silva", "52998224725", guardian.RelationshipParent, "123456", students)

	n, err := svc.Announce(maria, sch, pickup.Announcement{
		StudentIDs: []string{students[0].ID, students[1].ID},
		Note:       "de carro prata",
		Status:     pickup.StatusArrived,
	})
	if err != nil {
		t.Fatalf("Announce() failed: %v", err)
	}
	if n.GateName != "Main Gate" {
		t.Errorf("gate = %q, want %q (first student's grade decides)", n.GateName, "Main Gate")
	}
	if len(n.StudentNames) != 2 || n.StudentNames[0] != "Ana Silva" {
		t.Errorf("students = %v", n.StudentNames)
	}
	if n.GuardianName != "Maria Silva" || n.Relationship != guardian.RelationshipParent {
		t.Errorf("guardian snapshot = %q / %q", n.GuardianName, n.Relationship)
	}
	if !n.Active() {
		t.Error("new notification is not active")
	}

	n2, err := svc.Announce(maria, sch, pickup.Announcement{StudentIDs: []string{students[1].ID}, Status: pickup.StatusArrived})
	if err == nil {
		t.Fatalf("Announce() second active entry allowed under reject policy: %+v", n2)
	}

	// unknown student id is a field error
	_, err = svc.Announce(maria, sch, pickup.Announcement{StudentIDs: []string{"nope"}, Status: pickup.StatusArrived})
	if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("Announce(unknown student) error = %T (%v), want *core.ValidationError", err, err)
	}
}

func TestAnnounceGateFallback(t *testing.T) {
	db := inmem.NewDB()
	sch := newSchool(t, inmem.NewSchoolRepository(db))
	svc := pickup.NewService(inmem.NewPickupRepository(db), pickup.DuplicateReject)

	students := testutil.Students("Maternal I", guardian.ShiftMorning, "Bia Souza")
	g := testutil.CreateGuardian(t, inmem.NewGuardianRepository(db),
		sch.ID, "José Souza", "11144477735", guardian.RelationshipParent, "123456", students)

	n, err := svc.Announce(g, sch, pickup.Announcement{StudentIDs: []string{students[0].ID}, Status: pickup.StatusArrived})
	if err != nil {
		t.Fatalf("Announce() failed: %v", err)
	}
	if n.GateName != school.DefaultGateName {
		t.Errorf("gate = %q, want fallback %q", n.GateName, school.DefaultGateName)
	}
}

func TestAnnounceDuplicatePolicies(t *testing.T) {
	setup := func(t *testing.T, policy pickup.DuplicatePolicy) (*pickup.Service, guardian.Guardian, school.School) {
		db := inmem.NewDB()
		sch := newSchool(t, inmem.NewSchoolRepository(db))
		svc := pickup.NewService(inmem.NewPickupRepository(db), policy)
		students := append(
			testutil.Students("1º Ano Fundamental", guardian.ShiftMorning, "Ana Silva"),
			testutil.Students("3º Ano Fundamental", guardian.ShiftAfternoon, "João Silva")...,
		)
		g := testutil.CreateGuardian(t, inmem.NewGuardianRepository(db),
			sch.ID, "Maria Silva", "52998224725", guardian.RelationshipParent, "123456", students)
		return svc, g, sch
	}

	t.Run("reject", func(t *testing.T) {
		svc, g, sch := setup(t, pickup.DuplicateReject)
		if _, err := svc.Announce(g, sch, pickup.Announcement{StudentIDs: []string{g.Students[0].ID}, Status: pickup.StatusArrived}); err != nil {
			t.Fatalf("first Announce() failed: %v", err)
		}
		if _, err := svc.Announce(g, sch, pickup.Announcement{StudentIDs: []string{g.Students[1].ID}, Status: pickup.StatusArrived}); err != pickup.ErrAlreadyActive {
			t.Errorf("second Announce() error = %v, want ErrAlreadyActive", err)
		}
	})

	t.Run("allow", func(t *testing.T) {
		svc, g, sch := setup(t, pickup.DuplicateAllow)
		if _, err := svc.Announce(g, sch, pickup.Announcement{StudentIDs: []string{g.Students[0].ID}, Status: pickup.StatusArrived}); err != nil {
			t.Fatalf("first Announce() failed: %v", err)
		}
		if _, err := svc.Announce(g, sch, pickup.Announcement{StudentIDs: []string{g.Students[1].ID}, Status: pickup.StatusArrived}); err != nil {
			t.Fatalf("second Announce() failed: %v", err)
		}
		queue, err := svc.Queue(sch.ID)
		if err != nil {
			t.Fatalf("Queue() failed: %v", err)
		}
		if len(queue) != 2 {
			t.Errorf("queue = %d entries, want 2", len(queue))
		}
	})

	t.Run("merge", func(t *testing.T) {
		svc, g, sch := setup(t, pickup.DuplicateMerge)
		first, err := svc.Announce(g, sch, pickup.Announcement{StudentIDs: []string{g.Students[0].ID}, Status: pickup.StatusArrived})
		if err != nil {
			t.Fatalf("first Announce() failed: %v", err)
		}
		merged, err := svc.Announce(g, sch, pickup.Announcement{StudentIDs: []string{g.Students[0].ID, g.Students[1].ID}, Status: pickup.StatusArrived})
		if err != nil {
			t.Fatalf("second Announce() failed: %v", err)
		}
		if merged.ID != first.ID {
			t.Errorf("merge created a new entry %q, want %q", merged.ID, first.ID)
		}
		if len(merged.StudentNames) != 2 {
			t.Errorf("merged students = %v, want both, deduplicated", merged.StudentNames)
		}
		queue, err := svc.Queue(sch.ID)
		if err != nil {
			t.Fatalf("Queue() failed: %v", err)
		}
		if len(queue) != 1 {
			t.Errorf("queue = %d entries, want 1", len(queue))
		}
	})
}

func TestActiveForSharedStudents(t *testing.T) {
	db := inmem.NewDB()
	sch := newSchool(t, inmem.NewSchoolRepository(db))
	gRepo := inmem.NewGuardianRepository(db)
	svc := pickup.NewService(inmem.NewPickupRepository(db), pickup.DuplicateReject)

	students := testutil.Students("1º Ano Fundamental", guardian.ShiftMorning, "Ana Silva")
	maria := testutil.CreateGuardian(t, gRepo, sch.ID, "Maria Silva", "52998224725", guardian.RelationshipParent, "123456", students)

	// grandma's profile holds a value copy of the same child
	copies := append([]guardian.StudentInfo(nil), students...)
	vo := testutil.CreateGuardian(t, gRepo, sch.ID, "Carlos Silva", "15350946056", guardian.RelationshipGrandparent, "654321", copies)

	// an unrelated family
	other := testutil.CreateGuardian(t, gRepo, sch.ID, "José Souza", "11144477735", guardian.RelationshipParent, "123456",
		testutil.Students("2º Ano Fundamental", guardian.ShiftAfternoon, "Pedro Souza"))

	if _, err := svc.Announce(maria, sch, pickup.Announcement{StudentIDs: []string{students[0].ID}, Status: pickup.StatusArrived}); err != nil {
		t.Fatalf("Announce() failed: %v", err)
	}

	for _, tt := range []struct {
		name string
		g    guardian.Guardian
		want int
	}{
		{name: "announcer sees it", g: maria, want: 1},
		{name: "family member sees it", g: vo, want: 1},
		{name: "unrelated family does not", g: other, want: 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			active, err := svc.ActiveFor(tt.g)
			if err != nil {
				t.Fatalf("ActiveFor() failed: %v", err)
			}
			if len(active) != tt.want {
				t.Errorf("ActiveFor() = %d entries, want %d", len(active), tt.want)
			}
		})
	}
}

func TestRelease(t *testing.T) {
	db := inmem.NewDB()
	sch := newSchool(t, inmem.NewSchoolRepository(db))
	repo := inmem.NewPickupRepository(db)
	svc := pickup.NewService(repo, pickup.DuplicateReject)

	students := testutil.Students("1º Ano Fundamental", guardian.ShiftMorning, "Ana Silva")
	maria := testutil.CreateGuardian(t, inmem.NewGuardianRepository(db),
		sch.ID, "Maria Silva", "52998224725", guardian.RelationshipParent, "123456", students)

	n, err := svc.Announce(maria, sch, pickup.Announcement{StudentIDs: []string{students[0].ID}, Status: pickup.StatusArrived})
	if err != nil {
		t.Fatalf("Announce() failed: %v", err)
	}

	// the operator must be on the roster
	if _, err = svc.Release(sch, n.ID, "", "tudo certo"); err != pickup.ErrNoOperator {
		t.Errorf("Release(no operator) error = %v, want ErrNoOperator", err)
	}
	if _, err = svc.Release(sch, n.ID, "ghost", "tudo certo"); err != pickup.ErrNoOperator {
		t.Errorf("Release(unknown operator) error = %v, want ErrNoOperator", err)
	}

	rel, err := svc.Release(sch, n.ID, "op-1", "tudo certo")
	if err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if rel.OperatorName != "Seu Jorge" || rel.GuardianName != "Maria Silva" || rel.GateName != "Main Gate" {
		t.Errorf("release record = %+v", rel)
	}
	if rel.Observation != "tudo certo" {
		t.Errorf("observation = %q", rel.Observation)
	}

	// the queue entry moved to history, atomically
	queue, err := svc.Queue(sch.ID)
	if err != nil {
		t.Fatalf("Queue() failed: %v", err)
	}
	if len(queue) != 0 {
		t.Errorf("queue after release = %d entries, want 0", len(queue))
	}
	hist, err := svc.History(sch.ID)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(hist) != 1 || hist[0].ID != rel.ID {
		t.Errorf("history = %+v, want just the release", hist)
	}

	// releasing again is a miss
	if _, err = svc.Release(sch, n.ID, "op-1", ""); err != pickup.ErrNotFound {
		t.Errorf("Release(gone) error = %v, want ErrNotFound", err)
	}

	// guardian-side history view
	mine, err := svc.HistoryFor(maria)
	if err != nil {
		t.Fatalf("HistoryFor() failed: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("HistoryFor() = %d entries, want 1", len(mine))
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	for in, want := range map[string]pickup.DuplicatePolicy{
		"reject": pickup.DuplicateReject,
		"allow":  pickup.DuplicateAllow,
		"merge":  pickup.DuplicateMerge,
		"":       pickup.DuplicateReject,
		"lol":    pickup.DuplicateReject,
	} {
		if got := pickup.ParseDuplicatePolicy(in); got != want {
			t.Errorf("ParseDuplicatePolicy(%q) = %q, want %q", in, got, want)
		}
	}
}
