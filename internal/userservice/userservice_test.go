package userservice

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/haguru/sakura/internal/forms"
	"github.com/haguru/sakura/internal/interfaces/mocks"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/internal/userstore"
	"github.com/haguru/sakura/internal/validation"
	"github.com/haguru/sakura/pkg/kv/memory"
	"github.com/haguru/sakura/pkg/metrics"
	"github.com/haguru/sakura/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	sasuke = forms.RegisterForm{Username: "sasuke", Email: "sasuke@uchiha.jp", Password: "Chidori1"}
	sakura = forms.RegisterForm{Username: "sakura", Email: "sakura@haruno.jp", Password: "Cherry123"}
)

func newValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.NewValidator()
	require.NoError(t, err)
	return v
}

func newMemoryService(t *testing.T) (*UserService, *userstore.UserStore) {
	t.Helper()
	logger := zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{})
	store := userstore.NewUserStore(memory.New(), "users", logger)
	return NewUserService(store, logger, newValidator(t), nil), store
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)

	require.NoError(t, svc.RegisterUser(ctx, sasuke))

	user, err := svc.AuthenticateUser(ctx, forms.LoginForm{Email: sasuke.Email, Password: sasuke.Password})
	require.NoError(t, err)
	assert.Equal(t, &models.UserRecord{Username: "sasuke", Email: "sasuke@uchiha.jp", Password: "Chidori1"}, user)
}

func TestRegisterUser_Duplicates(t *testing.T) {
	tests := []struct {
		name   string
		second forms.RegisterForm
	}{
		{
			name:   "same email different username",
			second: forms.RegisterForm{Username: "itachi", Email: sasuke.Email, Password: "Tsukuyomi1"},
		},
		{
			name:   "same username different email",
			second: forms.RegisterForm{Username: sasuke.Username, Email: "other@uchiha.jp", Password: "Tsukuyomi1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, store := newMemoryService(t)

			require.NoError(t, svc.RegisterUser(ctx, sasuke))
			err := svc.RegisterUser(ctx, tt.second)
			assert.ErrorIs(t, err, ErrUserExists)

			records, err := store.LoadAll(ctx)
			require.NoError(t, err)
			assert.Len(t, records, 1)
			assert.Equal(t, sasuke.Username, records[0].Username)
		})
	}
}

func TestRegisterUser_AppendsInOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := newMemoryService(t)

	require.NoError(t, svc.RegisterUser(ctx, sasuke))
	require.NoError(t, svc.RegisterUser(ctx, sakura))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "sasuke", records[0].Username)
	assert.Equal(t, "sakura", records[1].Username)
}

func TestRegisterUser_EmptyFormNeverTouchesStore(t *testing.T) {
	store := mocks.NewMockUserStore(t)
	svc := NewUserService(store, zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{}), newValidator(t), nil)

	err := svc.RegisterUser(context.Background(), forms.RegisterForm{})

	var fieldErrors validation.Errors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Equal(t, validation.Errors{
		validation.FieldUsername: validation.MsgUsernameRequired,
		validation.FieldEmail:    validation.MsgEmailRequired,
		validation.FieldPassword: validation.MsgPasswordRequired,
	}, fieldErrors)
	store.AssertNotCalled(t, "LoadAll", mock.Anything)
	store.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestRegisterUser_DuplicateDoesNotWrite(t *testing.T) {
	store := mocks.NewMockUserStore(t)
	store.On("LoadAll", mock.Anything).Return([]models.UserRecord{
		{Username: "sasuke", Email: "sasuke@uchiha.jp", Password: "Chidori1"},
	}, nil).Once()
	svc := NewUserService(store, zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{}), newValidator(t), nil)

	err := svc.RegisterUser(context.Background(), forms.RegisterForm{Username: "itachi", Email: "sasuke@uchiha.jp", Password: "Tsukuyomi1"})
	assert.ErrorIs(t, err, ErrUserExists)
	store.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestRegisterUser_StoreErrors(t *testing.T) {
	boom := errors.New("storage offline")

	loadFails := mocks.NewMockUserStore(t)
	loadFails.On("LoadAll", mock.Anything).Return(nil, boom).Once()
	svc := NewUserService(loadFails, zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{}), newValidator(t), nil)
	assert.ErrorIs(t, svc.RegisterUser(context.Background(), sasuke), boom)

	saveFails := mocks.NewMockUserStore(t)
	saveFails.On("LoadAll", mock.Anything).Return([]models.UserRecord{}, nil).Once()
	saveFails.On("SaveAll", mock.Anything, []models.UserRecord{{Username: "sasuke", Email: "sasuke@uchiha.jp", Password: "Chidori1"}}).Return(boom).Once()
	svc = NewUserService(saveFails, zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{}), newValidator(t), nil)
	err := svc.RegisterUser(context.Background(), sasuke)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrUserExists))
}

func TestAuthenticateUser(t *testing.T) {
	stored := []models.UserRecord{
		{Username: "sasuke", Email: "sasuke@uchiha.jp", Password: "Chidori1"},
		{Username: "sakura", Email: "sakura@haruno.jp", Password: "Cherry123"},
	}
	tests := []struct {
		name     string
		form     forms.LoginForm
		wantUser string
		wantErr  error
	}{
		{
			name:     "second record matches",
			form:     forms.LoginForm{Email: "sakura@haruno.jp", Password: "Cherry123"},
			wantUser: "sakura",
		},
		{
			name:    "correct email wrong password",
			form:    forms.LoginForm{Email: "sakura@haruno.jp", Password: "Cherry124"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "unknown email",
			form:    forms.LoginForm{Email: "naruto@uzumaki.jp", Password: "Cherry123"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "password of another user",
			form:    forms.LoginForm{Email: "sasuke@uchiha.jp", Password: "Cherry123"},
			wantErr: ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockUserStore(t)
			store.On("LoadAll", mock.Anything).Return(stored, nil).Once()
			svc := NewUserService(store, zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{}), newValidator(t), nil)

			user, err := svc.AuthenticateUser(context.Background(), tt.form)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user.Username)
		})
	}
}

func TestAuthenticateUser_InvalidCredentialsDoesNotNameTheField(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)
	require.NoError(t, svc.RegisterUser(ctx, sasuke))

	_, wrongPassword := svc.AuthenticateUser(ctx, forms.LoginForm{Email: sasuke.Email, Password: "Chidori2"})
	_, wrongEmail := svc.AuthenticateUser(ctx, forms.LoginForm{Email: "nobody@uchiha.jp", Password: sasuke.Password})

	assert.Equal(t, wrongPassword, wrongEmail)
	assert.NotContains(t, wrongPassword.Error(), "password")
}

func TestAuthenticateUser_ValidationFirst(t *testing.T) {
	store := mocks.NewMockUserStore(t)
	svc := NewUserService(store, zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{}), newValidator(t), nil)

	_, err := svc.AuthenticateUser(context.Background(), forms.LoginForm{Email: "not-an-email", Password: "weak"})

	var fieldErrors validation.Errors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Equal(t, validation.MsgEmailInvalid, fieldErrors[validation.FieldEmail])
	assert.Equal(t, validation.MsgPasswordInvalid, fieldErrors[validation.FieldPassword])
	store.AssertNotCalled(t, "LoadAll", mock.Anything)
}

func TestUserService_OddStoredElementIsKept(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{})
	kv := memory.New()
	stored := `[{"username":"alice","email":"alice@x.io","password":"Alice1234"},{"username":42,"email":"bob@x.io","password":"Bobby1234"}]`
	require.NoError(t, kv.Set(ctx, "users", stored))
	svc := NewUserService(userstore.NewUserStore(kv, "users", logger), logger, newValidator(t), nil)

	user, err := svc.AuthenticateUser(ctx, forms.LoginForm{Email: "alice@x.io", Password: "Alice1234"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	err = svc.RegisterUser(ctx, forms.RegisterForm{Username: "alice", Email: "alice2@x.io", Password: "Alice1234"})
	assert.ErrorIs(t, err, ErrUserExists)

	require.NoError(t, svc.RegisterUser(ctx, forms.RegisterForm{Username: "carol", Email: "carol@x.io", Password: "Carol1234"}))

	raw, _, err := kv.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, stored[:len(stored)-1]+`,{"username":"carol","email":"carol@x.io","password":"Carol1234"}]`, raw)
}

func TestRegisterUser_InvalidUTF8NeverStored(t *testing.T) {
	ctx := context.Background()
	svc, store := newMemoryService(t)

	err := svc.RegisterUser(ctx, forms.RegisterForm{Username: "sakura", Email: "sakura\xff@haruno.jp", Password: "Cherry12\xff"})

	var fieldErrors validation.Errors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Equal(t, validation.Errors{
		validation.FieldEmail:    validation.MsgEmailInvalid,
		validation.FieldPassword: validation.MsgPasswordInvalid,
	}, fieldErrors)

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUserService_RecordGauge(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.NewZerologLoggerWithWriter("test", &bytes.Buffer{})
	m := metrics.NewMetrics("test")
	m.RegisterGauge(UserRecords, UserRecordsHelp)
	svc := NewUserService(userstore.NewUserStore(memory.New(), "users", logger), logger, newValidator(t), m)

	require.NoError(t, svc.RegisterUser(ctx, sasuke))
	require.NoError(t, svc.RegisterUser(ctx, sakura))

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, 2.0, families[0].GetMetric()[0].GetGauge().GetValue())
}
