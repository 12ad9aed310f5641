package preferences

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError describes one rejected preferences field
type ValidationError struct {
	Field string
	Tag   string
	Param string
	Value any
}

var messageTemplates = map[string]string{
	"oneof":    "%s must be one of: %s",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"gt":       "%s must be greater than %s",
	"halfstep": "%s must be a multiple of 0.5",
}

func (e *ValidationError) Error() string {
	template, ok := messageTemplates[e.Tag]
	if !ok {
		return fmt.Sprintf("%s failed %s validation (got %v)", e.Field, e.Tag, e.Value)
	}
	if strings.Count(template, "%s") == 2 {
		return fmt.Sprintf(template+" (got %v)", e.Field, e.Param, e.Value)
	}
	return fmt.Sprintf(template+" (got %v)", e.Field, e.Value)
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// report yaml names, which is what users type in files and the REPL
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		_ = validate.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
			doubled := fl.Field().Float() * 2
			return doubled == math.Trunc(doubled)
		})
	})
	return validate
}

// Validate checks every field. The returned error joins one
// *ValidationError per failing field.
func (p Preferences) Validate() error {
	return translate(getValidator().Struct(p))
}

func validateFields(p *Preferences, fields ...string) error {
	return translate(getValidator().StructPartial(p, fields...))
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate preferences: %w", err)
	}

	errs := make([]error, len(fieldErrs))
	for i, fe := range fieldErrs {
		errs[i] = &ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		}
	}
	return errors.Join(errs...)
}
