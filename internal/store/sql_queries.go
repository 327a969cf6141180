package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/mkhasanov/go-user-guard/models"
)

const (
	createUser = `INSERT INTO users (name, email, password_hash, role, status, last_login_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING user_id, name, email, password_hash, role, status, created_at, last_login_at;`

	findUserByEmail = `SELECT user_id, name, email, password_hash, role, status, created_at, last_login_at
    FROM users
    WHERE email = $1;`

	updateLastLogin = `UPDATE users
    SET last_login_at = $2
    WHERE user_id = $1;`
)

// userColumns is the canonical column list scanned into a [models.User].
var userColumns = []string{
	"user_id",
	"name",
	"email",
	"password_hash",
	"role",
	"status",
	"created_at",
	"last_login_at",
}

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListUsersQuery builds the SELECT returning every stored account,
// ordered by identifier for stable output.
func buildListUsersQuery() (string, []any, error) {
	return psql.
		Select(userColumns...).
		From("users").
		OrderBy("user_id").
		ToSql()
}

// buildUpdateStatusQuery builds a single UPDATE applying the given status to
// every identifier in userIDs. squirrel expands the slice into an
// IN ($2,$3,...) clause; RETURNING user_id reports which rows matched, so
// missing identifiers are detectable without a second round-trip.
func buildUpdateStatusQuery(userIDs []int64, status models.UserStatus) (string, []any, error) {
	return psql.
		Update("users").
		Set("status", string(status)).
		Where(sq.Eq{"user_id": userIDs}).
		Suffix("RETURNING user_id").
		ToSql()
}

// buildDeleteUsersQuery builds a single DELETE removing every identifier in
// userIDs, with RETURNING user_id reporting the rows actually removed.
func buildDeleteUsersQuery(userIDs []int64) (string, []any, error) {
	return psql.
		Delete("users").
		Where(sq.Eq{"user_id": userIDs}).
		Suffix("RETURNING user_id").
		ToSql()
}
