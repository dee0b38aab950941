package guardian

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/escolaexpress/backend/core"
)

// Shifts
const (
	ShiftMorning   = "Manhã"
	ShiftAfternoon = "Tarde"
	ShiftFullDay   = "Integral"
)

// Relationship labels. Masters may manage other authorized pickup adults.
const (
	RelationshipParent        = "Pai/Mãe"
	RelationshipLegalGuardian = "Responsável Legal"
	RelationshipGrandparent   = "Vô/Vó"
	RelationshipAuntUncle     = "Tio/Tia"
	RelationshipTransport     = "Transporte Escolar"
	RelationshipOther         = "Outro"
)

var (
	Shifts = []string{ShiftMorning, ShiftAfternoon, ShiftFullDay}

	RelationshipOptions = []string{
		RelationshipParent,
		RelationshipLegalGuardian,
		RelationshipGrandparent,
		RelationshipAuntUncle,
		RelationshipTransport,
		RelationshipOther,
	}

	MasterRelationships = []string{RelationshipParent, RelationshipLegalGuardian}
)

func isMasterRelationship(rel string) bool {
	for _, m := range MasterRelationships {
		if m == rel {
			return true
		}
	}
	return false
}

type (
	// StudentInfo is owned by one Guardian. The same child appears duplicated
	// by value (same id, separate copy) in every profile authorized to pick
	// them up.
	StudentInfo struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Grade string `json:"grade"`
		Shift string `json:"shift"`
	}

	// Guardian is an adult authorized to pick up one or more students.
	// NationalID (CPF, 11 digits) is the login handle; (SchoolID, NationalID)
	// uniqueness is convention only, the data layer does not enforce it.
	Guardian struct {
		ID           string        `json:"id"`
		SchoolID     string        `json:"school_id"`
		Name         string        `json:"name"`
		NationalID   string        `json:"cpf"`
		Relationship string        `json:"relationship"`
		Phone        string        `json:"phone"`
		PasswordHash []byte        `json:"-"`
		Students     []StudentInfo `json:"students"`
		CreatedAt    time.Time     `json:"created_at"` // UTC
	}
)

func (g *Guardian) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	g.PasswordHash = hash
	return nil
}

func (g *Guardian) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(g.PasswordHash, []byte(pwd))
}

// IsMaster reports whether this guardian may manage authorized pickup adults.
func (g Guardian) IsMaster() bool {
	return isMasterRelationship(g.Relationship)
}

func (g Guardian) StudentNames() []string {
	names := make([]string, 0, len(g.Students))
	for _, s := range g.Students {
		names = append(names, s.Name)
	}
	return names
}

func (g Guardian) StudentIDs() []string {
	ids := make([]string, 0, len(g.Students))
	for _, s := range g.Students {
		ids = append(ids, s.ID)
	}
	return ids
}

// SharesStudentWith reports whether both guardians have at least one student
// id in common, i.e. belong to the same family unit.
func (g Guardian) SharesStudentWith(other Guardian) bool {
	for _, id := range g.StudentIDs() {
		for _, oid := range other.StudentIDs() {
			if id == oid {
				return true
			}
		}
	}
	return false
}

// NewStudent contains information needed to enroll a student on a profile.
type NewStudent struct {
	Name  string `json:"name" validate:"required"`
	Grade string `json:"grade" validate:"required"`
	Shift string `json:"shift" validate:"required,shift"`
}

// NewGuardian contains information needed to register a master guardian with
// their students. The password contract is deliberate UX for a school gate:
// numeric, at least 6 digits.
type NewGuardian struct {
	SchoolID     string       `json:"school_id" validate:"required"`
	Name         string       `json:"name" validate:"required"`
	NationalID   string       `json:"cpf" validate:"required,len=11,digits"`
	Relationship string       `json:"relationship" validate:"required,relationship"`
	Phone        string       `json:"phone"`
	Password     string       `json:"password" validate:"required,min=6,digits"`
	Students     []NewStudent `json:"students" validate:"required,min=1,dive"`
}

func (ng *NewGuardian) Validate(validate *validator.Validate) error {
	ng.Name = core.CleanString(ng.Name)
	ng.NationalID = core.StripNonDigits(ng.NationalID)
	ng.Phone = core.CleanString(ng.Phone)
	for i := range ng.Students {
		ng.Students[i].Name = core.CleanString(ng.Students[i].Name)
		ng.Students[i].Grade = core.CleanString(ng.Students[i].Grade)
	}
	return validate.Struct(ng)
}

// NewAuthorized contains information needed for a master guardian to register
// another adult authorized to pick up the same children. The student list is
// cloned from the master's profile; only credentials and the relationship
// label are new.
type NewAuthorized struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship" validate:"required,relationship"`
	// CustomRelationship replaces Relationship when it is "Outro".
	CustomRelationship string `json:"custom_relationship" validate:"required_if=Relationship Outro"`
	NationalID         string `json:"cpf" validate:"required,len=11,digits"`
	Password           string `json:"password" validate:"required,min=6,digits"`
}

func (na *NewAuthorized) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.NationalID = core.StripNonDigits(na.NationalID)
	na.CustomRelationship = core.CleanString(na.CustomRelationship)
	if err := validate.Struct(na); err != nil {
		return err
	}
	if isMasterRelationship(na.Relationship) {
		return core.NewValidationError(nil, core.FieldError{
			Field: "relationship",
			Error: errNotAuthorizedRelText,
		})
	}
	return nil
}

// Label resolves the final relationship label for the new profile.
func (na NewAuthorized) Label() string {
	if na.Relationship == RelationshipOther {
		return na.CustomRelationship
	}
	return na.Relationship
}

// Login is a login attempt. The id must be exactly 11 digits and the password
// at least 6 characters before any store lookup happens.
type Login struct {
	SchoolID   string `json:"school_id" validate:"required"`
	NationalID string `json:"cpf" validate:"required,len=11,digits"`
	Password   string `json:"password" validate:"required,min=6"`
}

func (l *Login) Validate(validate *validator.Validate) error {
	l.NationalID = core.StripNonDigits(l.NationalID)
	return validate.Struct(l)
}
