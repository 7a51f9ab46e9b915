package interfaces

import (
	"context"

	"github.com/haguru/sakura/internal/forms"
	"github.com/haguru/sakura/internal/models"
)

type UserService interface {
	RegisterUser(ctx context.Context, form forms.RegisterForm) error
	AuthenticateUser(ctx context.Context, form forms.LoginForm) (*models.UserRecord, error)
}
