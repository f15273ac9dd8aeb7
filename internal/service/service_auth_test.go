package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-session-keeper/internal/crypto"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/store"
	"github.com/MKhiriev/go-session-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock UserRepository
// ─────────────────────────────────────────────

// mockUserRepository implements store.UserRepository for unit tests.
// Each method field can be overridden per test case.
type mockUserRepository struct {
	createUserFn         func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn        func(ctx context.Context, email string, withSecrets bool) (models.User, error)
	findBySessionTokenFn func(ctx context.Context, token string) (models.User, error)
	findByIDFn           func(ctx context.Context, id int64) (models.User, error)
	listUsersFn          func(ctx context.Context) ([]models.User, error)
	deleteByIDFn         func(ctx context.Context, id int64) (models.User, error)
	updateSessionFn      func(ctx context.Context, userID int64, token string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFn(ctx, user)
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string, withSecrets bool) (models.User, error) {
	return m.findByEmailFn(ctx, email, withSecrets)
}

func (m *mockUserRepository) FindUserBySessionToken(ctx context.Context, token string) (models.User, error) {
	return m.findBySessionTokenFn(ctx, token)
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listUsersFn(ctx)
}

func (m *mockUserRepository) DeleteUserByID(ctx context.Context, id int64) (models.User, error) {
	return m.deleteByIDFn(ctx, id)
}

func (m *mockUserRepository) UpdateSessionToken(ctx context.Context, userID int64, token string) error {
	return m.updateSessionFn(ctx, userID, token)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testSecretKey = "test-secret-key"

func newAuthService(repo store.UserRepository) AuthService {
	return NewAuthService(repo, crypto.NewHasher(testSecretKey), logger.Nop())
}

// noUser is a findByEmail stub reporting an absent account.
func noUser(_ context.Context, _ string, _ bool) (models.User, error) {
	return models.User{}, store.ErrNoUserWasFound
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	hasher := crypto.NewHasher(testSecretKey)

	var createdWith models.User
	repo := &mockUserRepository{
		findByEmailFn: noUser,
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			createdWith = user
			// echo back the public projection with a store-assigned ID
			return models.User{UserID: 1, Email: user.Email, Username: user.Username}, nil
		},
	}

	svc := newAuthService(repo)
	registered, err := svc.Register(context.Background(), "alice@example.com", "s3cret", "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
	assert.Equal(t, "alice@example.com", registered.Email)
	assert.Empty(t, registered.Credential.PasswordHash, "registered user must carry no secrets")

	// the digest handed to the store must verify against the fresh salt
	require.NotEmpty(t, createdWith.Credential.Salt)
	assert.Equal(t,
		hasher.Derive(createdWith.Credential.Salt, "s3cret"),
		createdWith.Credential.PasswordHash,
	)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newAuthService(&mockUserRepository{})

	cases := []struct {
		name                      string
		email, password, username string
	}{
		{"empty email", "", "pass", "alice"},
		{"empty password", "alice@example.com", "", "alice"},
		{"empty username", "alice@example.com", "pass", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password, tc.username)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string, _ bool) (models.User, error) {
			return models.User{UserID: 7, Email: email}, nil
		},
	}

	svc := newAuthService(repo)
	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret", "alice")

	assert.ErrorIs(t, err, ErrEmailAlreadyTaken)
}

// TestRegister_EmailTakenOnInsert covers the lost creation race: the
// existence check saw nothing, but the unique index rejected the INSERT.
func TestRegister_EmailTakenOnInsert(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: noUser,
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}

	svc := newAuthService(repo)
	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret", "alice")

	assert.ErrorIs(t, err, ErrEmailAlreadyTaken)
}

func TestRegister_StoreFailure(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string, _ bool) (models.User, error) {
			return models.User{}, assert.AnError
		},
	}

	svc := newAuthService(repo)
	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret", "alice")

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

// accountFixture builds a stored account whose password digest matches the
// given plaintext under the test hasher.
func accountFixture(t *testing.T, id int64, email, password string) models.User {
	t.Helper()
	hasher := crypto.NewHasher(testSecretKey)

	salt := "fixture-salt"
	return models.User{
		UserID:   id,
		Email:    email,
		Username: "fixture",
		Credential: models.Credential{
			Salt:         salt,
			PasswordHash: hasher.Derive(salt, password),
		},
	}
}

func TestLogin_Success(t *testing.T) {
	stored := accountFixture(t, 7, "alice@example.com", "s3cret")

	var persistedToken string
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string, withSecrets bool) (models.User, error) {
			require.True(t, withSecrets, "login must request the secret projection")
			return stored, nil
		},
		updateSessionFn: func(_ context.Context, userID int64, token string) error {
			assert.Equal(t, int64(7), userID)
			persistedToken = token
			return nil
		},
	}

	svc := newAuthService(repo)
	user, token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.NotEmpty(t, token)
	assert.Equal(t, persistedToken, token, "returned token must be the persisted one")
	assert.Equal(t, models.Credential{}, user.Credential, "login response must carry no secrets")
}

// TestLogin_TokenRotates verifies that two successful logins for the same
// account yield different session tokens.
func TestLogin_TokenRotates(t *testing.T) {
	stored := accountFixture(t, 7, "alice@example.com", "s3cret")

	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string, _ bool) (models.User, error) {
			return stored, nil
		},
		updateSessionFn: func(_ context.Context, _ int64, _ string) error { return nil },
	}

	svc := newAuthService(repo)

	_, first, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	_, second, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newAuthService(&mockUserRepository{})

	_, _, err := svc.Login(context.Background(), "", "pass")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable checks that both
// failure modes surface as the exact same error value.
func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	stored := accountFixture(t, 7, "alice@example.com", "s3cret")

	unknownRepo := &mockUserRepository{findByEmailFn: noUser}
	wrongPassRepo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string, _ bool) (models.User, error) {
			return stored, nil
		},
	}

	_, _, errUnknown := newAuthService(unknownRepo).Login(context.Background(), "ghost@example.com", "whatever")
	_, _, errWrongPass := newAuthService(wrongPassRepo).Login(context.Background(), "alice@example.com", "not-the-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestLogin_PersistFailure(t *testing.T) {
	stored := accountFixture(t, 7, "alice@example.com", "s3cret")

	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string, _ bool) (models.User, error) {
			return stored, nil
		},
		updateSessionFn: func(_ context.Context, _ int64, _ string) error {
			return assert.AnError
		},
	}

	svc := newAuthService(repo)
	_, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret")

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// ─────────────────────────────────────────────
// ResolveSession
// ─────────────────────────────────────────────

func TestResolveSession_Success(t *testing.T) {
	repo := &mockUserRepository{
		findBySessionTokenFn: func(_ context.Context, token string) (models.User, error) {
			assert.Equal(t, "valid-token", token)
			return models.User{UserID: 7, Email: "alice@example.com"}, nil
		},
	}

	svc := newAuthService(repo)
	identity, err := svc.ResolveSession(context.Background(), "valid-token")

	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
}

func TestResolveSession_EmptyToken(t *testing.T) {
	svc := newAuthService(&mockUserRepository{})

	_, err := svc.ResolveSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveSession_UnknownToken(t *testing.T) {
	repo := &mockUserRepository{
		findBySessionTokenFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	svc := newAuthService(repo)
	_, err := svc.ResolveSession(context.Background(), "garbage")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveSession_StoreFailure(t *testing.T) {
	repo := &mockUserRepository{
		findBySessionTokenFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, assert.AnError
		},
	}

	svc := newAuthService(repo)
	_, err := svc.ResolveSession(context.Background(), "valid-token")

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
