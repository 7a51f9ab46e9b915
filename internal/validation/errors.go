package validation

import (
	"sort"
	"strings"
)

// Errors maps each failing field to its reason. It is returned as an error
// by Validator.Form and always holds every failing field of the form.
type Errors map[Field]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, string(field)+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []Field {
	fields := make([]Field, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Map converts e to plain string keys for JSON bodies and templates.
func (e Errors) Map() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for field, reason := range e {
		out[string(field)] = reason
	}
	return out
}
