package cli

import (
	"errors"
	"io"

	"github.com/haguru/sakura/internal/forms"
	"github.com/haguru/sakura/internal/userservice"
	"github.com/haguru/sakura/internal/validation"
	"github.com/haguru/sakura/internal/views"
	"github.com/spf13/cobra"
)

func newRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register a new user record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := collect(cmd.InOrStdin(), cmd.OutOrStdout(), forms.RegisterForm{},
				usernameField, emailField, passwordField)
			if err != nil {
				return err
			}

			a, err := newOneShotCore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(cmd.Context()) }()

			return report(cmd.OutOrStdout(), a.UserService.RegisterUser(cmd.Context(), form), views.AlertSignupSuccessful)
		},
	}
}

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check an email and password against the stored user records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := collect(cmd.InOrStdin(), cmd.OutOrStdout(), forms.LoginForm{},
				emailField, passwordField)
			if err != nil {
				return err
			}

			a, err := newOneShotCore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(cmd.Context()) }()

			_, err = a.UserService.AuthenticateUser(cmd.Context(), form)
			return report(cmd.OutOrStdout(), err, views.AlertLoginSuccessful)
		},
	}
}

// report prints the outcome of a flow. Expected failures are printed here
// and come back as errReported; anything else is returned for Execute.
func report(w io.Writer, err error, success string) error {
	var fieldErrors validation.Errors
	switch {
	case err == nil:
		printAlert(w, true, success)
		return nil
	case errors.As(err, &fieldErrors):
		printFieldErrors(w, fieldErrors)
	case errors.Is(err, userservice.ErrInvalidCredentials):
		printAlert(w, false, views.AlertInvalidCredentials)
	case errors.Is(err, userservice.ErrUserExists):
		printAlert(w, false, views.AlertUserExists)
	default:
		return err
	}
	return errReported
}
