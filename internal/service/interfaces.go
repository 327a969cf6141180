package service

import (
	"context"

	"github.com/mkhasanov/go-user-guard/models"
)

// AuthService is the authentication policy: it decides accept/reject for
// registration, login, and authenticated-request verification, and enforces
// the account-status rules.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	RevokeToken(ctx context.Context, tokenString string) error
}

// AdminService applies status transitions and deletions to sets of accounts
// and exposes the account listing.
type AdminService interface {
	ApplyStatus(ctx context.Context, userIDs []int64, status models.UserStatus) (models.BatchResult, error)
	DeleteUsers(ctx context.Context, userIDs []int64) (models.BatchResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}
