package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/sdg-idea-lab/internal/sdg"
)

// ValidationError reports the first invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so messages match what clients sent
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("sdg", func(fl validator.FieldLevel) bool {
		return sdg.IsKnown(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register sdg validation: %v", err))
	}
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	return v
}

// Validate checks the SDG selection.
func (r *GenerateIdeasRequest) Validate() error {
	return translate(validate.Struct(r))
}

// Validate checks that both texts are present and not blank.
func (r *EvaluateRequest) Validate() error {
	return translate(validate.Struct(r))
}

// translate turns validator output into a *ValidationError for the first failing field.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, ".") {
		field = ns[strings.Index(ns, ".")+1:]
	}
	return &ValidationError{Field: field, Message: message(fe)}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be empty"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s items", fe.Param())
	case "unique":
		return "must not repeat a goal"
	case "sdg":
		return fmt.Sprintf("%q is not a known SDG", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
