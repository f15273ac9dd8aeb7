package models

import "time"

// Credential groups the secret material attached to a user account.
// None of its fields is ever serialised into API responses; the repository
// additionally omits these columns from lookups unless secrets are requested
// explicitly.
type Credential struct {
	// PasswordHash is the keyed digest of the user's password, derived from
	// the salt stored alongside it. It is meaningful only together with Salt:
	// the pair is written in a single statement at registration and read in a
	// single statement at login.
	PasswordHash string `json:"-"`

	// Salt is the random per-account value mixed into password hashing.
	Salt string `json:"-"`

	// SessionToken is the opaque bearer value of the account's active
	// session. Empty until the first login; overwritten on every successful
	// login, so at most one token is valid per account at any time.
	SessionToken string `json:"-"`
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields live in the Credential sub-record and must never be exposed
// outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user, assigned by the store at
	// creation and immutable afterwards.
	UserID int64 `json:"id"`

	// Email is the unique login identifier of the account.
	Email string `json:"email"`

	// Username is the display name of the user.
	Username string `json:"username"`

	// Credential holds the account's secret material.
	Credential Credential `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
