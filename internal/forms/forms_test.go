package forms

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_LoginForm(t *testing.T) {
	tests := []struct {
		name    string
		state   LoginForm
		field   string
		value   string
		want    LoginForm
		wantErr error
	}{
		{
			name:  "set email",
			state: LoginForm{Password: "Chidori1"},
			field: FieldEmail,
			value: "sasuke@uchiha.jp",
			want:  LoginForm{Email: "sasuke@uchiha.jp", Password: "Chidori1"},
		},
		{
			name:  "overwrite password",
			state: LoginForm{Email: "sasuke@uchiha.jp", Password: "old"},
			field: FieldPassword,
			value: "new",
			want:  LoginForm{Email: "sasuke@uchiha.jp", Password: "new"},
		},
		{
			name:  "set visible from string",
			state: LoginForm{Email: "sasuke@uchiha.jp"},
			field: FieldVisible,
			value: "true",
			want:  LoginForm{Email: "sasuke@uchiha.jp", Visible: true},
		},
		{
			name:    "username is not a login field",
			state:   LoginForm{Email: "sasuke@uchiha.jp"},
			field:   FieldUsername,
			value:   "sasuke",
			want:    LoginForm{Email: "sasuke@uchiha.jp"},
			wantErr: ErrUnknownField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.state
			got, err := Reduce(tt.state, tt.field, tt.value)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got error %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, before, tt.state, "input state must not change")
		})
	}
}

func TestReduce_RegisterForm(t *testing.T) {
	state := RegisterForm{}
	var err error
	for _, step := range []struct{ field, value string }{
		{FieldUsername, "sakura"},
		{FieldEmail, "sakura@konoha.jp"},
		{FieldPassword, "Cherry123"},
	} {
		state, err = Reduce(state, step.field, step.value)
		require.NoError(t, err)
	}
	assert.Equal(t, RegisterForm{Username: "sakura", Email: "sakura@konoha.jp", Password: "Cherry123"}, state)
}

func TestReduce_InvalidBool(t *testing.T) {
	state := LoginForm{Email: "a@b.c"}
	got, err := Reduce(state, FieldVisible, "maybe")
	assert.Error(t, err)
	assert.Equal(t, state, got)
}

func TestFromValues(t *testing.T) {
	values := url.Values{
		"username": {"sakura"},
		"email":    {"sakura@konoha.jp"},
		"password": {"Cherry123"},
		"action":   {"submit"},
	}
	got, err := FromValues(RegisterForm{}, values)
	require.NoError(t, err)
	assert.Equal(t, RegisterForm{Username: "sakura", Email: "sakura@konoha.jp", Password: "Cherry123"}, got)

	login, err := FromValues(LoginForm{}, values)
	require.NoError(t, err)
	assert.Equal(t, LoginForm{Email: "sakura@konoha.jp", Password: "Cherry123"}, login)
}

func TestToggleVisibility(t *testing.T) {
	login := LoginForm{Email: "a@b.c", Password: "Secret12"}
	shown := login.ToggleVisibility()
	assert.True(t, shown.Visible)
	assert.Equal(t, login.Email, shown.Email)
	assert.False(t, shown.ToggleVisibility().Visible)

	register := RegisterForm{Username: "sakura", Email: "a@b.c", Password: "Secret12"}
	shownRegister := register.ToggleVisibility()
	assert.True(t, shownRegister.Visible)
	assert.Equal(t, register.Username, shownRegister.Username)
}
