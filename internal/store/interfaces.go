package store

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

// UserRepository is the persistence contract for user accounts. All methods
// are context-aware I/O against the external store; implementations surface
// driver failures as wrapped errors and well-known conditions as the sentinel
// errors of this package.
type UserRepository interface {
	// CreateUser persists a new account and returns it with store-assigned
	// fields populated. Returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by email. Secret columns (password
	// hash, salt, session token) are included only when withSecrets is true.
	FindUserByEmail(ctx context.Context, email string, withSecrets bool) (models.User, error)

	// FindUserBySessionToken resolves an active session token to its account.
	FindUserBySessionToken(ctx context.Context, token string) (models.User, error)

	// FindUserByID looks an account up by its store-assigned identifier.
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	// ListUsers returns all accounts, secrets excluded.
	ListUsers(ctx context.Context) ([]models.User, error)

	// DeleteUserByID removes an account and returns the deleted record.
	// Deleting a non-existent account is a no-op: a zero User and nil error.
	DeleteUserByID(ctx context.Context, id int64) (models.User, error)

	// UpdateSessionToken overwrites the account's active session token,
	// superseding whatever token was stored before.
	UpdateSessionToken(ctx context.Context, userID int64, token string) error
}
