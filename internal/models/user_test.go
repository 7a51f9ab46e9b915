package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewUserRecord(t *testing.T) {
	type args struct {
		username string
		email    string
		password string
	}
	tests := []struct {
		name string
		args args
		want *UserRecord
	}{
		{
			name: "Create new record with all fields",
			args: args{
				username: "naruto",
				email:    "naruto@konoha.jp",
				password: "Rasengan1",
			},
			want: &UserRecord{
				Username: "naruto",
				Email:    "naruto@konoha.jp",
				Password: "Rasengan1",
			},
		},
		{
			name: "Create new record with empty fields",
			args: args{},
			want: &UserRecord{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewUserRecord(tt.args.username, tt.args.email, tt.args.password); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewUserRecord() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserRecord_Collides(t *testing.T) {
	existing := UserRecord{Username: "sakura", Email: "sakura@konoha.jp", Password: "Cherry123"}
	tests := []struct {
		name  string
		other UserRecord
		want  bool
	}{
		{"same username", UserRecord{Username: "sakura", Email: "other@konoha.jp"}, true},
		{"same email", UserRecord{Username: "haruno", Email: "sakura@konoha.jp"}, true},
		{"both differ", UserRecord{Username: "haruno", Email: "haruno@konoha.jp"}, false},
		{"case differs", UserRecord{Username: "Sakura", Email: "Sakura@konoha.jp"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := existing.Collides(tt.other); got != tt.want {
				t.Errorf("Collides() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserRecord_Matches(t *testing.T) {
	r := UserRecord{Username: "kakashi", Email: "kakashi@konoha.jp", Password: "Sharingan6"}
	if !r.Matches("kakashi@konoha.jp", "Sharingan6") {
		t.Error("Matches() = false for identical credentials")
	}
	if r.Matches("kakashi@konoha.jp", "sharingan6") {
		t.Error("Matches() = true for a wrong password")
	}
	if r.Matches("kakashi@suna.jp", "Sharingan6") {
		t.Error("Matches() = true for a wrong email")
	}
}

func TestUserRecord_UnmarshalKeepsStoredElements(t *testing.T) {
	stored := `[{"username":"alice","email":"alice@x.io","password":"Alice1234"},` +
		`{"username":42,"email":"bob@x.io","password":"Bobby1234"},` +
		`{"username":"carol","email":"carol@x.io","password":"Carol1234","createdAt":"2024-01-01"},` +
		`null,"stray",{"email":"dave@x.io"}]`

	var records []UserRecord
	if err := json.Unmarshal([]byte(stored), &records); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	wantFields := [][3]string{
		{"alice", "alice@x.io", "Alice1234"},
		{"", "bob@x.io", "Bobby1234"},
		{"carol", "carol@x.io", "Carol1234"},
		{"", "", ""},
		{"", "", ""},
		{"", "dave@x.io", ""},
	}
	if len(records) != len(wantFields) {
		t.Fatalf("got %d records, want %d", len(records), len(wantFields))
	}
	for i, want := range wantFields {
		got := [3]string{records[i].Username, records[i].Email, records[i].Password}
		if got != want {
			t.Errorf("record %d = %v, want %v", i, got, want)
		}
	}
	if records[0].raw != nil {
		t.Errorf("canonical record kept raw bytes %s", records[0].raw)
	}
	if !records[1].Matches("bob@x.io", "Bobby1234") {
		t.Error("record with a non-string username does not match its email and password")
	}

	records = append(records, *NewUserRecord("erin", "erin@x.io", "Erin12345"))
	out, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := stored[:len(stored)-1] + `,{"username":"erin","email":"erin@x.io","password":"Erin12345"}]`
	if string(out) != want {
		t.Errorf("Marshal() = %s\nwant %s", out, want)
	}
}
