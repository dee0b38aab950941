package school

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/escolaexpress/backend/core"
)

var (
	regionTag  = "region"
	regionText = "unknown region"
)

// InitValidators registers school-specific validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(regionTag, regionValidation)
	core.RegisterCustomTranslation(validate, translator, regionTag, regionText)
}

// regionValidation checks that the value is one of Regions.
func regionValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range Regions {
		if r == val {
			return true
		}
	}
	return false
}
