// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the session middleware stores the
// resolved account of the caller. Downstream handlers read it back with
// GetIdentityFromContext instead of re-resolving the session token.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.IdentityCtxKey, user)
var IdentityCtxKey = contextKey("identity")

// GetIdentityFromContext retrieves the resolved account identity from the
// context.
//
// Returns the identity and an ok flag:
//   - ok == true  — an identity was attached by the session middleware
//   - ok == false — the value is missing or has an unexpected type
func GetIdentityFromContext(ctx context.Context) (models.User, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.User)
	return identity, ok
}
