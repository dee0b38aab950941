package testutil

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/pickup"
	"github.com/escolaexpress/backend/core/school"
)

// NewValidator returns a validator with every custom tag and translation
// registered, the way the apps set it up at boot.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	school.InitValidators(validate, translator)
	guardian.InitValidators(validate, translator)
	return validate, translator
}

func CreateSchool(
	t *testing.T,
	repo school.Repository,
	name, region string,
	gates []school.Gate,
	mapping map[string]string,
	staff []school.Staff,
) school.School {
	sch := school.School{
		ID:               uuid.New().String(),
		Name:             name,
		CNPJ:             "12345678000190",
		Region:           region,
		Gates:            gates,
		GradeGateMapping: mapping,
		AvailableGrades:  school.DefaultGrades,
		Staff:            staff,
	}
	sch, err := repo.AppendSchool(sch)
	if err != nil {
		t.Fatalf("CreateSchool() failed: %v", err)
	}
	return sch
}

func CreateGuardian(
	t *testing.T,
	repo guardian.Repository,
	schoolID, name, cpf, relationship, pwd string,
	students []guardian.StudentInfo,
) guardian.Guardian {
	g := guardian.Guardian{
		ID:           uuid.New().String(),
		SchoolID:     schoolID,
		Name:         name,
		NationalID:   cpf,
		Relationship: relationship,
		Students:     students,
		CreatedAt:    time.Now().UTC(),
	}
	if pwd != "" {
		if err := g.SetPassword(pwd); err != nil {
			t.Fatalf("CreateGuardian() failed: %v", err)
		}
	}
	g, err := repo.AppendGuardian(g)
	if err != nil {
		t.Fatalf("CreateGuardian() failed: %v", err)
	}
	return g
}

func CreateNotification(
	t *testing.T,
	repo pickup.Repository,
	g guardian.Guardian,
	gateName string,
	status pickup.Status,
	studentNames ...string,
) pickup.Notification {
	if len(studentNames) == 0 {
		studentNames = g.StudentNames()
	}
	n := pickup.Notification{
		ID:           uuid.New().String(),
		SchoolID:     g.SchoolID,
		GuardianID:   g.ID,
		GuardianName: g.Name,
		Relationship: g.Relationship,
		StudentNames: studentNames,
		GateName:     gateName,
		CreatedAt:    time.Now().UTC(),
		Status:       status,
	}
	n, err := repo.AppendNotification(n)
	if err != nil {
		t.Fatalf("CreateNotification() failed: %v", err)
	}
	return n
}

// Students builds StudentInfo records with fresh ids.
func Students(grade, shift string, names ...string) []guardian.StudentInfo {
	students := make([]guardian.StudentInfo, 0, len(names))
	for _, name := range names {
		students = append(students, guardian.StudentInfo{
			ID:    uuid.New().String(),
			Name:  name,
			Grade: grade,
			Shift: shift,
		})
	}
	return students
}
