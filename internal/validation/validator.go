package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	structValidator "github.com/go-playground/validator/v10"
)

// Validator runs the field predicates over a tagged form struct.
type Validator struct {
	validate *structValidator.Validate
}

// NewValidator creates a Validator with the predicate tags registered.
// Field names in the returned Errors come from the `form` struct tag.
func NewValidator() (*Validator, error) {
	validate := structValidator.New(structValidator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(FormTag), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	tags := map[string]func(string) Result{
		TagEmailShape:       ValidateEmail,
		TagLetters:          ValidateUsername,
		TagPasswordStrength: ValidatePassword,
	}
	for tag, predicate := range tags {
		predicate := predicate
		err := validate.RegisterValidation(tag, func(fl structValidator.FieldLevel) bool {
			return predicate(fl.Field().String()).OK()
		})
		if err != nil {
			return nil, fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}

	return &Validator{validate: validate}, nil
}

// Form validates every field of form and returns nil, an Errors value
// holding all failing fields, or an error if form is not a struct.
func (v *Validator) Form(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors structValidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid form: %w", err)
	}

	result := make(Errors, len(validationErrors))
	for _, fe := range validationErrors {
		field := Field(fe.Field())
		if _, seen := result[field]; seen {
			continue
		}
		result[field] = reason(field, fe)
	}
	return result
}

// reason asks the field predicate for the message so the text is the same
// whether the value failed `required` or a format tag.
func reason(field Field, fe structValidator.FieldError) string {
	value, _ := fe.Value().(string)
	if predicate := Predicate(field); predicate != nil {
		if res := predicate(value); !res.OK() {
			return res.Reason
		}
	}
	return MsgInvalidValue
}
