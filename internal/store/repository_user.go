package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and credential mutation against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans one row of the users table into a [models.User]. The dest
// list must match the projection built by [selectUsers]: public columns
// first, then (optionally) the secret columns. session_token is nullable and
// scans through sql.NullString.
func scanUser(row rowScanner, withSecrets bool) (models.User, error) {
	var user models.User

	dest := []any{&user.UserID, &user.Email, &user.Username, &user.CreatedAt}

	var sessionToken sql.NullString
	if withSecrets {
		dest = append(dest, &user.Credential.PasswordHash, &user.Credential.Salt, &sessionToken)
	}

	if err := row.Scan(dest...); err != nil {
		return models.User{}, err
	}
	user.Credential.SessionToken = sessionToken.String

	return user, nil
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with store-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns the public columns via
// a RETURNING clause, so the caller receives the canonical database
// representation of the new account with secrets already stripped.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.Username, user.Credential.PasswordHash, user.Credential.Salt)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved user from db
	created, err := scanUser(row, false)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return created, nil
}

// FindUserByEmail retrieves the account whose email matches the given value.
// Secret columns are part of the projection only when withSecrets is true.
//
// Error handling:
//   - Empty result set → [ErrNoUserWasFound].
//   - Any driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string, withSecrets bool) (models.User, error) {
	query, args, err := selectUsers(withSecrets).Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("error building sql query: %w", err)
	}

	return r.findOne(ctx, "*userRepository.FindUserByEmail", withSecrets, query, args...)
}

// FindUserBySessionToken resolves an active session token to its account.
// The returned record carries the public projection only: callers resolving
// an identity never need the credential material back.
func (r *userRepository) FindUserBySessionToken(ctx context.Context, token string) (models.User, error) {
	query, args, err := selectUsers(false).Where(sq.Eq{"session_token": token}).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("error building sql query: %w", err)
	}

	return r.findOne(ctx, "*userRepository.FindUserBySessionToken", false, query, args...)
}

// FindUserByID retrieves the account with the given store-assigned ID,
// secrets excluded.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	query, args, err := selectUsers(false).Where(sq.Eq{"user_id": id}).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("error building sql query: %w", err)
	}

	return r.findOne(ctx, "*userRepository.FindUserByID", false, query, args...)
}

// findOne runs a single-row lookup built by one of the Find methods and
// normalises its error handling.
func (r *userRepository) findOne(ctx context.Context, funcName string, withSecrets bool, query string, args ...any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	foundUser, err := scanUser(row, withSecrets)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// ListUsers returns all accounts with the public projection, ordered by ID.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectUsers(false).OrderBy("user_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows, false)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: scanning error")
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: rows iteration failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return users, nil
}

// DeleteUserByID removes the account with the given ID and returns the
// deleted record. A missing account is not an error: the method returns a
// zero [models.User] and nil.
func (r *userRepository) DeleteUserByID(ctx context.Context, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, deleteUserByID, id)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUserByID").Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	deleted, err := scanUser(row, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, nil
		}
		log.Err(err).Str("func", "*userRepository.DeleteUserByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return deleted, nil
}

// UpdateSessionToken overwrites the account's active session token. The
// previous token (if any) stops resolving as soon as the UPDATE commits.
func (r *userRepository) UpdateSessionToken(ctx context.Context, userID int64, token string) error {
	log := logger.FromContext(ctx)

	query, args, err := updateSessionToken(userID, token).ToSql()
	if err != nil {
		return fmt.Errorf("error building sql query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateSessionToken").Msg("error: exec failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
