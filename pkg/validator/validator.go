package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validator provides validation functionality
type Validator interface {
	Validate(interface{}) error
	FormatValidationErrors(err error) map[string]string
}

type customValidator struct {
	validator *validator.Validate
}

// New returns a validator that knows the "hhmm" tag (zero-padded 24h
// clock time) and reports fields by their json name.
func New() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsClockTime(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return &customValidator{validator: v}
}

// IsClockTime reports whether s is a zero-padded HH:MM time of day.
func IsClockTime(s string) bool {
	return clockPattern.MatchString(s)
}

func (cv *customValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *customValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "hhmm":
				errors[field] = field + " must be a time in HH:MM format"
			case "min":
				errors[field] = field + " must be at least " + e.Param()
			case "max":
				errors[field] = field + " must be at most " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
