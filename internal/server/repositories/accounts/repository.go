package accounts

import (
	"context"

	"github.com/campuskit/campusauth/internal/server/models"
)

// Repository is the identity store adapter. An absent account is reported as
// common.ErrorNotFound, which is a valid non-error outcome for lookups; any
// other failure indicates store trouble and is wrapped for the service layer.
type Repository interface {
	// Create inserts a new account and returns it with store-assigned
	// timestamps. A second account with the same email fails with
	// common.ErrDuplicateEmail, enforced by a unique index so that two
	// concurrent registrations can never both succeed.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}
