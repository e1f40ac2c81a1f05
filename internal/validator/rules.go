package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the project-specific validation tags.
func registerCustomRules(v *validator.Validate) error {
	// "future": a time.Time strictly after now. Used for job deadlines.
	if err := v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.After(time.Now())
	}); err != nil {
		return err
	}

	return nil
}
