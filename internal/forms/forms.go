// Package forms holds the typed state of the login and registration forms
// and the reducer that applies one field change at a time.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldVisible  = "visible"
)

var ErrUnknownField = errors.New("unknown form field")

// LoginForm is the state of the login form. Visible toggles whether the
// password is shown in clear.
type LoginForm struct {
	Email    string `mapstructure:"email" form:"email" validate:"required,email_shape"`
	Password string `mapstructure:"password" form:"password" validate:"required,password_strength"`
	Visible  bool   `mapstructure:"visible" form:"visible"`
}

// RegisterForm is the state of the registration form.
type RegisterForm struct {
	Username string `mapstructure:"username" form:"username" validate:"required,letters"`
	Email    string `mapstructure:"email" form:"email" validate:"required,email_shape"`
	Password string `mapstructure:"password" form:"password" validate:"required,password_strength"`
	Visible  bool   `mapstructure:"visible" form:"visible"`
}

// State is implemented by the two form records.
type State interface {
	LoginForm | RegisterForm
}

// Reduce returns a copy of state with field set to value. The input state
// is never modified. Unknown fields return ErrUnknownField and the state
// unchanged.
func Reduce[S State](state S, field, value string) (S, error) {
	fields := map[string]interface{}{}
	if err := mapstructure.Decode(state, &fields); err != nil {
		return state, fmt.Errorf("failed to read form state: %w", err)
	}
	if _, ok := fields[field]; !ok {
		return state, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	fields[field] = value

	var next S
	if err := mapstructure.WeakDecode(fields, &next); err != nil {
		return state, fmt.Errorf("failed to set form field %q: %w", field, err)
	}
	return next, nil
}

// FromValues folds submitted values into state through Reduce. Only the
// first value of each key is used; keys that are not form fields (the
// submit action, for example) are skipped.
func FromValues[S State](state S, values url.Values) (S, error) {
	var err error
	for key := range values {
		next, reduceErr := Reduce(state, key, values.Get(key))
		if errors.Is(reduceErr, ErrUnknownField) {
			continue
		}
		if reduceErr != nil {
			err = errors.Join(err, reduceErr)
			continue
		}
		state = next
	}
	return state, err
}

// ToggleVisibility flips the password visibility.
func (f LoginForm) ToggleVisibility() LoginForm {
	next, _ := Reduce(f, FieldVisible, strconv.FormatBool(!f.Visible))
	return next
}

// ToggleVisibility flips the password visibility.
func (f RegisterForm) ToggleVisibility() RegisterForm {
	next, _ := Reduce(f, FieldVisible, strconv.FormatBool(!f.Visible))
	return next
}
