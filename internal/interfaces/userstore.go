package interfaces

import (
	"context"

	"github.com/haguru/sakura/internal/models"
)

// UserStore reads and writes the full ordered list of user records.
// It does not check uniqueness; that is left to the registration flow.
type UserStore interface {
	LoadAll(ctx context.Context) ([]models.UserRecord, error)
	SaveAll(ctx context.Context, records []models.UserRecord) error
}
