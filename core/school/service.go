package school

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("school not found")

type (
	Repository interface {
		AppendSchool(s School) (School, error)
		QueryAllSchools() ([]School, error)
		GetSchoolByID(id string) (School, error)
		UpdateSchool(s School) (School, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ns NewSchool) (School, error) {
	sch := School{
		ID:               uuid.New().String(),
		Name:             ns.Name,
		CNPJ:             ns.CNPJ,
		Address:          ns.Address,
		Region:           ns.Region,
		ResponsibleName:  ns.ResponsibleName,
		ResponsiblePhone: ns.ResponsiblePhone,
		AvailableGrades:  DefaultGrades,
	}
	return svc.repo.AppendSchool(sch)
}

func (svc *Service) QueryAll() ([]School, error) {
	return svc.repo.QueryAllSchools()
}

func (svc *Service) GetByID(id string) (School, error) {
	return svc.repo.GetSchoolByID(id)
}

// Configure replaces the school's gates, grade routing, grade list and staff
// roster. Gates and staff entries without an id get one assigned.
func (svc *Service) Configure(id string, cfg Config) (School, error) {
	sch, err := svc.repo.GetSchoolByID(id)
	if err != nil {
		return School{}, err
	}

	for i := range cfg.Gates {
		if cfg.Gates[i].ID == "" {
			cfg.Gates[i].ID = uuid.New().String()
		}
	}
	for i := range cfg.Staff {
		if cfg.Staff[i].ID == "" {
			cfg.Staff[i].ID = uuid.New().String()
		}
	}

	sch.Gates = cfg.Gates
	sch.GradeGateMapping = cfg.GradeGateMapping
	sch.AvailableGrades = cfg.AvailableGrades
	sch.Staff = cfg.Staff
	return svc.repo.UpdateSchool(sch)
}
