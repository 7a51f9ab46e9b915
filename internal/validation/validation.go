// Package validation holds the field predicates shared by the login and
// registration forms. Every predicate returns a Result instead of a bare
// bool so callers get the reason text with the verdict.
package validation

import (
	"regexp"
	"unicode/utf8"
)

// Status is the tag of a Result.
type Status int

const (
	Pass Status = iota
	Fail
)

// Code classifies a failing Result.
type Code string

const (
	CodeRequired      Code = "required"
	CodeInvalidFormat Code = "invalid_format"
)

// Field names a form field. The values match the form and JSON field names.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// Result is the outcome of one predicate. Code and Reason are empty when
// Status is Pass.
type Result struct {
	Status Status
	Code   Code
	Reason string
}

// OK reports whether the value passed.
func (r Result) OK() bool {
	return r.Status == Pass
}

func passed() Result {
	return Result{Status: Pass}
}

func failed(code Code, reason string) Result {
	return Result{Status: Fail, Code: code, Reason: reason}
}

// jsSpace is the ECMAScript \s class; Go's \s only covers ASCII whitespace.
const jsSpace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	emailPattern    = regexp.MustCompile(`^[^` + jsSpace + `@]+@[^` + jsSpace + `@]+\.[^` + jsSpace + `@]+$`)
	lettersPattern  = regexp.MustCompile(`^[a-zA-Z]+$`)
	passwordLength  = regexp.MustCompile(`^[^\n\r\x{2028}\x{2029}]{8,}$`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordClasses = []*regexp.Regexp{passwordLength, passwordDigit, passwordLower, passwordUpper}
)

// Values that are not valid UTF-8 fail every predicate as invalid_format.

// ValidateEmail accepts local@domain.tld shaped strings.
func ValidateEmail(value string) Result {
	if value == "" {
		return failed(CodeRequired, MsgEmailRequired)
	}
	if !utf8.ValidString(value) {
		return failed(CodeInvalidFormat, MsgEmailInvalid)
	}
	if !emailPattern.MatchString(value) {
		return failed(CodeInvalidFormat, MsgEmailInvalid)
	}
	return passed()
}

// ValidateUsername accepts ASCII letters only, so digits and punctuation
// are rejected.
func ValidateUsername(value string) Result {
	if value == "" {
		return failed(CodeRequired, MsgUsernameRequired)
	}
	if !utf8.ValidString(value) {
		return failed(CodeInvalidFormat, MsgUsernameInvalid)
	}
	if !lettersPattern.MatchString(value) {
		return failed(CodeInvalidFormat, MsgUsernameInvalid)
	}
	return passed()
}

// ValidatePassword requires at least 8 characters with a digit, a lowercase
// and an uppercase letter. There is no maximum length and no special
// character rule.
func ValidatePassword(value string) Result {
	if value == "" {
		return failed(CodeRequired, MsgPasswordRequired)
	}
	if !utf8.ValidString(value) {
		return failed(CodeInvalidFormat, MsgPasswordInvalid)
	}
	for _, re := range passwordClasses {
		if !re.MatchString(value) {
			return failed(CodeInvalidFormat, MsgPasswordInvalid)
		}
	}
	return passed()
}

// Predicate returns the predicate for field, or nil for an unknown field.
func Predicate(field Field) func(string) Result {
	switch field {
	case FieldUsername:
		return ValidateUsername
	case FieldEmail:
		return ValidateEmail
	case FieldPassword:
		return ValidatePassword
	}
	return nil
}
