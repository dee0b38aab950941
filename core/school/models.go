package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/escolaexpress/backend/core"
)

// DefaultGateName is where students are routed when their grade has no
// configured gate, or when the configured gate id no longer exists.
const DefaultGateName = "Portaria Geral"

// Regions the platform operates in. Ads use RegionAll to target all of them.
var Regions = []string{
	"Toda a Cidade",
	"Centro ⭐",
	"Oficinas ⭐",
	"Uvaranas ⭐",
	"Nova Rússia ⭐",
	"Contorno",
	"Jardim Carvalho",
	"Estrela",
	"Boa Vista",
	"Chapada",
	"Cará-Cará",
	"Colônia Dona Luíza",
	"Neves",
}

// DefaultGrades seeds a new school's grade list until staff configure it.
var DefaultGrades = []string{
	"Maternal I",
	"Maternal II",
	"1º Ano Fundamental",
	"2º Ano Fundamental",
	"3º Ano Fundamental",
	"4º Ano Fundamental",
	"5º Ano Fundamental",
}

type (
	// Gate is a physical pickup location. Owned by exactly one School.
	Gate struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// Staff is an operator on the school's roster; a release action must be
	// attached to one of them.
	Staff struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	School struct {
		ID               string  `json:"id"`
		Name             string  `json:"name"`
		CNPJ             string  `json:"cnpj"`
		Address          string  `json:"address"`
		Region           string  `json:"region"`
		ResponsibleName  string  `json:"responsible_name"`
		ResponsiblePhone string  `json:"responsible_phone"`
		Latitude         float64 `json:"latitude"`
		Longitude        float64 `json:"longitude"`

		Gates []Gate `json:"gates,omitempty"`
		// GradeGateMapping routes a grade label to a gate id in Gates.
		// Grades without a mapping fall back to DefaultGateName.
		GradeGateMapping map[string]string `json:"grade_gate_mapping,omitempty"`
		AvailableGrades  []string          `json:"available_grades,omitempty"`
		Staff            []Staff           `json:"staff,omitempty"`
	}
)

// GateNameForGrade resolves the pickup gate for a grade label, falling back
// to DefaultGateName when the grade is unmapped or the mapped gate is gone.
func (s School) GateNameForGrade(grade string) string {
	gateID, ok := s.GradeGateMapping[grade]
	if !ok {
		return DefaultGateName
	}
	for _, g := range s.Gates {
		if g.ID == gateID {
			return g.Name
		}
	}
	return DefaultGateName
}

// StaffByID looks an operator up on the roster.
func (s School) StaffByID(id string) (Staff, bool) {
	for _, st := range s.Staff {
		if st.ID == id {
			return st, true
		}
	}
	return Staff{}, false
}

// Grades returns the configured grade list, or DefaultGrades if none is set.
func (s School) Grades() []string {
	if len(s.AvailableGrades) > 0 {
		return s.AvailableGrades
	}
	return DefaultGrades
}

// NewSchool contains information needed to register a new School.
type NewSchool struct {
	Name             string `json:"name" validate:"required"`
	CNPJ             string `json:"cnpj" validate:"required"`
	Address          string `json:"address"`
	Region           string `json:"region" validate:"required,region"`
	ResponsibleName  string `json:"responsible_name"`
	ResponsiblePhone string `json:"responsible_phone"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.CNPJ = core.CleanString(ns.CNPJ)
	ns.Address = core.CleanString(ns.Address)
	ns.ResponsibleName = core.CleanString(ns.ResponsibleName)
	return validate.Struct(ns)
}

// Config defines what staff may reconfigure on an existing School.
type Config struct {
	Gates            []Gate            `json:"gates"`
	GradeGateMapping map[string]string `json:"grade_gate_mapping"`
	AvailableGrades  []string          `json:"available_grades"`
	Staff            []Staff           `json:"staff"`
}
