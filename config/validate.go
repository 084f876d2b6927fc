package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report yaml keys instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("nonnegative_duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d >= 0
	})
	_ = v.RegisterValidation("positive_duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks every configured value and reports the first problem.
func (c *Config) Validate() error {
	if err := defaultValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %s", errorMessage(err))
	}
	return nil
}

// errorMessage converts a validator error into a human-readable message.
func errorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err.Error()
	}

	fe := validationErrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")

	switch fe.ActualTag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "duration":
		return fmt.Sprintf("%s must be a duration such as 300ms or 2s", field)
	case "nonnegative_duration":
		return fmt.Sprintf("%s must not be negative", field)
	case "positive_duration":
		return fmt.Sprintf("%s must be greater than zero", field)
	case "url":
		return fmt.Sprintf("%s must be a valid url", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
