// userservice.go
package userservice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/haguru/sakura/internal/forms"
	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/internal/validation"
	"github.com/haguru/sakura/pkg/helper"
)

type UserService struct {
	Store     interfaces.UserStore
	Logger    interfaces.Logger
	Validator *validation.Validator
	Metrics   interfaces.Metrics

	// mu serializes load-check-append so two registrations in one process
	// cannot both pass the duplicate check.
	mu sync.Mutex
}

// NewUserService creates a new UserService instance.
func NewUserService(store interfaces.UserStore, logger interfaces.Logger,
	validator *validation.Validator, metrics interfaces.Metrics,
) *UserService {
	return &UserService{
		Store:     store,
		Logger:    logger,
		Validator: validator,
		Metrics:   metrics,
	}
}

// RegisterUser validates the form, rejects a username or email that is
// already stored, and appends the new record. Validation failures come back
// as validation.Errors and nothing is read or written.
func (s *UserService) RegisterUser(ctx context.Context, form forms.RegisterForm) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", form.Username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", form.Username)

	if err := s.Validator.Form(form); err != nil {
		s.logValidation(funcName, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Store.LoadAll(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToLoadUsers, err)
	}

	candidate := models.NewUserRecord(form.Username, form.Email, form.Password)
	for _, record := range records {
		if record.Collides(*candidate) {
			s.Logger.Info(ErrUserAlreadyExists, "func", funcName, "user", form.Username, "email", form.Email)
			return ErrUserExists
		}
	}

	records = append(records, *candidate)
	if err := s.Store.SaveAll(ctx, records); err != nil {
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", form.Username, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}
	s.setRecordGauge(len(records))

	s.Logger.Info("User registered successfully", "func", funcName, "user", form.Username, "records", len(records))
	return nil
}

// AuthenticateUser validates the form and returns the first record whose
// email and password both equal the submitted ones.
func (s *UserService) AuthenticateUser(ctx context.Context, form forms.LoginForm) (*models.UserRecord, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "email", form.Email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", form.Email)

	if err := s.Validator.Form(form); err != nil {
		s.logValidation(funcName, err)
		return nil, err
	}

	records, err := s.Store.LoadAll(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToLoadUsers, err)
	}
	s.setRecordGauge(len(records))

	for i := range records {
		if records[i].Matches(form.Email, form.Password) {
			s.Logger.Info("User authenticated successfully", "func", funcName, "user", records[i].Username)
			return &records[i], nil
		}
	}

	s.Logger.Info(ErrNoMatchingUser, "func", funcName, "email", form.Email)
	return nil, ErrInvalidCredentials
}

func (s *UserService) logValidation(funcName string, err error) {
	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		s.Logger.Debug(ErrValidationFailed, "func", funcName, "fields", fieldErrors.Fields())
		return
	}
	s.Logger.Error(ErrValidationFailed, "func", funcName, "error", err)
}

func (s *UserService) setRecordGauge(n int) {
	if s.Metrics != nil {
		s.Metrics.SetGauge(UserRecords, float64(n))
	}
}
