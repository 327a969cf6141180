package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the admin batch status operations
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Transient driver failures → wrapped as [ErrStoreUnavailable].
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Name, user.Email, user.PasswordHash, user.Role, user.Status, user.LastLoginAt)

	var created models.User
	if err := row.Scan(&created.UserID, &created.Name, &created.Email, &created.PasswordHash, &created.Role, &created.Status, &created.CreatedAt, &created.LastLoginAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("error: user insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		case "":
			return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", r.db.classify(err))
		}
	}

	return created, nil
}

// FindUserByEmail retrieves a user record by its unique email key.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Transient driver failures → wrapped as [ErrStoreUnavailable].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByEmail, email)

	if err := row.Scan(&foundUser.UserID, &foundUser.Name, &foundUser.Email, &foundUser.PasswordHash, &foundUser.Role, &foundUser.Status, &foundUser.CreatedAt, &foundUser.LastLoginAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Str("email", email).Msg("error: user lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", r.db.classify(err))
	}

	return foundUser, nil
}

// UpdateLastLogin records a successful authentication timestamp for userID.
// A missing record is not an error here: the account was looked up by the
// caller moments before, and losing a last-login update to a concurrent
// delete is acceptable.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateLastLogin, userID, at); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateLastLogin").Int64("user_id", userID).Msg("error: last login update failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return nil
}

// ListUsers returns every stored account ordered by identifier.
// Password hashes are scanned but never serialized by the model.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)

	for rows.Next() {
		var user models.User

		scanErr := rows.Scan(
			&user.UserID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.Status,
			&user.CreatedAt,
			&user.LastLoginAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// UpdateStatusBatch applies status to every matching identifier with one
// UPDATE statement, which makes the batch atomic at the store level: either
// all matching rows change or none do. Identifiers with no matching record
// are skipped; the returned slice holds the identifiers actually updated.
func (r *userRepository) UpdateStatusBatch(ctx context.Context, userIDs []int64, status models.UserStatus) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateStatusQuery(userIDs, status)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateStatusBatch").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.collectReturnedIDs(ctx, "*userRepository.UpdateStatusBatch", query, args)
}

// DeleteUsersBatch removes every matching record with one DELETE statement.
// Same atomicity and skip-on-missing semantics as [UpdateStatusBatch].
func (r *userRepository) DeleteUsersBatch(ctx context.Context, userIDs []int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUsersQuery(userIDs)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUsersBatch").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.collectReturnedIDs(ctx, "*userRepository.DeleteUsersBatch", query, args)
}

// collectReturnedIDs executes a DML statement carrying a RETURNING user_id
// suffix and gathers the returned identifiers.
func (r *userRepository) collectReturnedIDs(ctx context.Context, caller, query string, args []any) ([]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("failed to execute batch statement")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	ids := make([]int64, 0, 8)
	for rows.Next() {
		var id int64
		if scanErr := rows.Scan(&id); scanErr != nil {
			log.Err(scanErr).Str("func", caller).Msg("failed to scan returned id")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		ids = append(ids, id)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", caller).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return ids, nil
}
