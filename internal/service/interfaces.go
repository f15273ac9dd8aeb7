package service

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

// AuthService is the authentication core: account registration, credential
// verification, session-token issuance and resolution.
type AuthService interface {
	// Register creates a new account with a freshly salted password digest.
	Register(ctx context.Context, email, password, username string) (models.User, error)

	// Login verifies the credentials and, on success, mints a new session
	// token for the account, superseding any previous one. It returns the
	// account (secrets excluded) and the token to hand to the caller.
	Login(ctx context.Context, email, password string) (models.User, string, error)

	// ResolveSession maps an inbound session token to its account identity.
	ResolveSession(ctx context.Context, token string) (models.User, error)
}

// UserService covers the user-management operations exposed to authenticated
// callers.
type UserService interface {
	// ListUsers returns all accounts, secrets excluded.
	ListUsers(ctx context.Context) ([]models.User, error)

	// DeleteUser removes an account by ID and returns the deleted record.
	// Deleting a missing account is a no-op.
	DeleteUser(ctx context.Context, id int64) (models.User, error)
}
