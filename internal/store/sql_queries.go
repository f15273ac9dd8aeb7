package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (email, username, password_hash, salt)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, email, username, created_at;`

	deleteUserByID = `DELETE FROM users
    WHERE user_id = $1
    RETURNING user_id, email, username, created_at;`
)

// psql builds parameterised queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// publicUserColumns is the default projection of the users table. Secret
// columns are listed separately and appended only on request, so that the
// default read path can never leak credential material.
var publicUserColumns = []string{"user_id", "email", "username", "created_at"}

// secretUserColumns are the credential columns omitted from the default
// projection. Order matters: scanUser scans them in this order after the
// public columns.
var secretUserColumns = []string{"password_hash", "salt", "session_token"}

// selectUsers returns a SELECT builder over the users table with either the
// public or the full projection.
func selectUsers(withSecrets bool) sq.SelectBuilder {
	columns := publicUserColumns
	if withSecrets {
		columns = make([]string, 0, len(publicUserColumns)+len(secretUserColumns))
		columns = append(columns, publicUserColumns...)
		columns = append(columns, secretUserColumns...)
	}

	return psql.Select(columns...).From("users")
}

// updateSessionToken returns an UPDATE builder that overwrites the active
// session token of a single account.
func updateSessionToken(userID int64, token string) sq.UpdateBuilder {
	return psql.Update("users").
		Set("session_token", token).
		Where(sq.Eq{"user_id": userID})
}
