package store

import (
	"context"
	"time"

	"github.com/mkhasanov/go-user-guard/models"
)

// UserRepository is the credential store: it owns all User records and no
// other component mutates them directly.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields (UserID, CreatedAt) populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by its unique email key.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// UpdateLastLogin records a successful authentication timestamp.
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error

	// ListUsers returns every stored account.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateStatusBatch sets status on every matching identifier in a single
	// atomic statement and returns the identifiers actually updated.
	// Identifiers with no matching record are simply absent from the result.
	UpdateStatusBatch(ctx context.Context, userIDs []int64, status models.UserStatus) ([]int64, error)

	// DeleteUsersBatch removes every matching record in a single atomic
	// statement and returns the identifiers actually deleted.
	DeleteUsersBatch(ctx context.Context, userIDs []int64) ([]int64, error)
}
