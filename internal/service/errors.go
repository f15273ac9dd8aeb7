package service

import "errors"

// Flow-level error taxonomy. Every failure escaping a service method is one
// of these sentinels (possibly wrapped with context); callers match with
// [errors.Is] and never see raw store or driver errors.
var (
	// ErrInvalidDataProvided signals a missing or empty required field.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrEmailAlreadyTaken signals a registration attempt against an email
	// that already has an account.
	ErrEmailAlreadyTaken = errors.New("email already taken")

	// ErrInvalidCredentials signals a failed login. Unknown email and wrong
	// password yield this same error on purpose, so a caller cannot probe
	// which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated signals a missing or unresolvable session token.
	ErrUnauthenticated = errors.New("session token is missing or unknown")

	// ErrStoreUnavailable wraps any unexpected failure of the underlying
	// store. Store calls are never retried; the failure surfaces immediately.
	ErrStoreUnavailable = errors.New("store unavailable")
)
