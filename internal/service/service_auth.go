package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-session-keeper/internal/crypto"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/store"
	"github.com/MKhiriev/go-session-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, and opaque
// session-token lifecycle using a UserRepository for persistence and the
// keyed Hasher for all digest derivation.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher derives password digests and session tokens. It carries the
	// process-wide secret key, injected at construction.
	hasher *crypto.Hasher

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and Hasher.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, hasher *crypto.Hasher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// It validates that email, password, and username are all non-empty, checks
// that no account holds the email yet, derives the password digest from a
// fresh random salt, and delegates persistence to the UserRepository. The
// existence check and the insert are separate store calls, so two concurrent
// registrations for the same email can both pass the check; the unique index
// on the email column rejects the loser, which surfaces as the same
// ErrEmailAlreadyTaken.
//
// Returns the persisted user (with a store-assigned UserID, secrets excluded) or:
//   - ErrInvalidDataProvided if any input field is empty.
//   - ErrEmailAlreadyTaken if an account with the email already exists.
//   - A wrapped ErrStoreUnavailable if any store call fails unexpectedly.
func (a *authService) Register(ctx context.Context, email, password, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" || username == "" {
		log.Error().Str("email", email).Str("username", username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	// existence check only, secrets are not needed here
	_, err := a.userRepository.FindUserByEmail(ctx, email, false)
	if err == nil {
		log.Error().Str("email", email).Msg("email already taken")
		return models.User{}, ErrEmailAlreadyTaken
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	salt, err := a.hasher.RandomToken()
	if err != nil {
		log.Err(err).Msg("salt generation failed")
		return models.User{}, fmt.Errorf("salt generation failed: %w", err)
	}

	user := models.User{
		Email:    email,
		Username: username,
		Credential: models.Credential{
			Salt:         salt,
			PasswordHash: a.hasher.Derive(salt, password),
		},
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Err(err).Str("email", email).Msg("email already taken (lost creation race)")
			return models.User{}, ErrEmailAlreadyTaken
		}
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user and mints a new session token.
//
// It validates that both email and password are non-empty, looks the account
// up with its secrets, recomputes the expected digest from the stored salt,
// and compares the digests in constant time. On a match it derives a new
// session token from fresh random entropy and the account ID, and persists
// it, overwriting whatever token was active before.
//
// Unknown email and wrong password both return ErrInvalidCredentials so the
// two cases are indistinguishable to the caller.
//
// Returns the account (secrets stripped) and the new session token, or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrInvalidCredentials if the account is unknown or the password wrong.
//   - A wrapped ErrStoreUnavailable if any store call fails unexpectedly.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, "", ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email, true)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Str("email", email).Msg("login attempt for unknown email")
			return models.User{}, "", ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	expected := a.hasher.Derive(foundUser.Credential.Salt, password)
	if !crypto.Equal(expected, foundUser.Credential.PasswordHash) {
		log.Error().Int64("id", foundUser.UserID).Str("email", email).Msg("wrong password")
		return models.User{}, "", ErrInvalidCredentials
	}

	// Fresh entropy for every login: the token digest is keyed by the random
	// salt, so repeated logins of the same account yield different tokens.
	tokenSalt, err := a.hasher.RandomToken()
	if err != nil {
		log.Err(err).Msg("token salt generation failed")
		return models.User{}, "", fmt.Errorf("token salt generation failed: %w", err)
	}
	sessionToken := a.hasher.Derive(tokenSalt, strconv.FormatInt(foundUser.UserID, 10))

	if err := a.userRepository.UpdateSessionToken(ctx, foundUser.UserID, sessionToken); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("persisting session token failed")
		return models.User{}, "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	// strip credential material before handing the record out
	foundUser.Credential = models.Credential{}

	return foundUser, sessionToken, nil
}

// ResolveSession maps an inbound session token to its account.
//
// Returns the account identity (secrets excluded) or:
//   - ErrUnauthenticated if the token is empty or resolves to no account.
//   - A wrapped ErrStoreUnavailable if the store call fails unexpectedly.
func (a *authService) ResolveSession(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.User{}, ErrUnauthenticated
	}

	foundUser, err := a.userRepository.FindUserBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Msg("unknown session token")
			return models.User{}, ErrUnauthenticated
		}
		log.Err(err).Msg("user search by session token failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return foundUser, nil
}
