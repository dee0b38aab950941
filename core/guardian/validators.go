package guardian

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/escolaexpress/backend/core"
)

var (
	relationshipTag  = "relationship"
	relationshipText = "invalid relationship"

	shiftTag  = "shift"
	shiftText = "invalid shift"

	errNotAuthorizedRelText = "authorized adults cannot hold a master relationship"
)

// InitValidators registers guardian-specific validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(relationshipTag, relationshipValidation)
	core.RegisterCustomTranslation(validate, translator, relationshipTag, relationshipText)

	_ = validate.RegisterValidation(shiftTag, shiftValidation)
	core.RegisterCustomTranslation(validate, translator, shiftTag, shiftText)
}

// relationshipValidation checks that the value is one of RelationshipOptions.
func relationshipValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, rel := range RelationshipOptions {
		if rel == val {
			return true
		}
	}
	return false
}

// shiftValidation checks that the value is one of Shifts.
func shiftValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, s := range Shifts {
		if s == val {
			return true
		}
	}
	return false
}
