package models

import (
	"bytes"
	"encoding/json"
)

// UserRecord is one stored user. The password is kept as typed; the demo
// store never hashes it.
type UserRecord struct {
	Username string `json:"username" bson:"username" mapstructure:"username"`
	Email    string `json:"email" bson:"email" mapstructure:"email"`
	Password string `json:"password" bson:"password" mapstructure:"password"`

	// raw holds the stored element verbatim when it is not exactly what
	// the three fields would encode to. It is written back unchanged.
	raw json.RawMessage
}

type plainRecord UserRecord

// NewUserRecord creates a new UserRecord from its three fields.
// Note: No validation is performed here.
func NewUserRecord(username, email, password string) *UserRecord {
	return &UserRecord{
		Username: username,
		Email:    email,
		Password: password,
	}
}

// Collides reports whether other shares a username or an email with r.
func (r UserRecord) Collides(other UserRecord) bool {
	return r.Username == other.Username || r.Email == other.Email
}

// Matches reports whether r carries exactly the given email and password.
func (r UserRecord) Matches(email, password string) bool {
	return r.Email == email && r.Password == password
}

// UnmarshalJSON reads whatever string fields the element has and never
// fails. Fields that are missing or not strings stay empty, so such an
// element matches no login and collides with no registration. Elements
// that would not re-encode identically keep their stored bytes.
func (r *UserRecord) UnmarshalJSON(data []byte) error {
	*r = UserRecord{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil {
		r.Username = stringField(fields, "username")
		r.Email = stringField(fields, "email")
		r.Password = stringField(fields, "password")
	}

	canonical, err := json.Marshal(plainRecord(*r))
	if err != nil || !sameJSON(canonical, data) {
		r.raw = append(json.RawMessage(nil), data...)
	}
	return nil
}

// MarshalJSON writes a loaded element back exactly as it was read.
func (r UserRecord) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	return json.Marshal(plainRecord(r))
}

func stringField(fields map[string]json.RawMessage, name string) string {
	var value string
	if err := json.Unmarshal(fields[name], &value); err != nil {
		return ""
	}
	return value
}

func sameJSON(a, b []byte) bool {
	var compact bytes.Buffer
	if err := json.Compact(&compact, b); err != nil {
		return false
	}
	return bytes.Equal(a, compact.Bytes())
}
