package userservice

import "errors"

const (
	// Error messages for user service operations
	ErrFailedToLoadUsers    = "failed to load users"
	ErrFailedToRegisterUser = "failed to register user"
	ErrValidationFailed     = "form validation failed"
	ErrUserAlreadyExists    = "user already exists"
	ErrNoMatchingUser       = "no user matches email and password" // #nosec G101

	// metrics constants
	UserRecords     = "user_records"
	UserRecordsHelp = "Number of user records in storage after the last load or write"
)

var (
	// ErrInvalidCredentials is returned for any login that finds no record.
	// It never says whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when the username or the email is taken.
	ErrUserExists = errors.New(ErrUserAlreadyExists)
)
