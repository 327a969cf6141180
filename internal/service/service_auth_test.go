package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkhasanov/go-user-guard/internal/config"
	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/mock"
	"github.com/mkhasanov/go-user-guard/internal/store"
	"github.com/mkhasanov/go-user-guard/models"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "go-user-guard-test"
)

func newTestAuthSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*authService,
	*mock.MockUserRepository,
	*mock.MockStore,
) {
	t.Helper()
	mockRepo := mock.NewMockUserRepository(ctrl)
	mockRevoked := mock.NewMockStore(ctrl)

	cfg := config.Auth{
		TokenSignKey:  testSignKey,
		TokenIssuer:   testIssuer,
		TokenDuration: time.Hour,
	}
	svc := NewAuthService(mockRepo, mockRevoked, cfg, logger.Nop()).(*authService)

	return svc, mockRepo, mockRevoked
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	req := models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "super-secret",
	}

	mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, req.Name, u.Name)
			assert.Equal(t, req.Email, u.Email)
			assert.Equal(t, models.RoleUser, u.Role)
			assert.Equal(t, models.StatusActive, u.Status)
			assert.NotEqual(t, req.Password, u.PasswordHash, "password must be persisted hashed")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)))
			u.UserID = 42
			return u, nil
		},
	)

	user, err := svc.RegisterUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, req.Email, user.Email)
}

func TestAuthService_RegisterUser_EmptyFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{name: "empty name", req: models.RegisterRequest{Email: "a@b.c", Password: "p"}},
		{name: "empty email", req: models.RegisterRequest{Name: "A", Password: "p"}},
		{name: "empty password", req: models.RegisterRequest{Name: "A", Email: "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAuthService_RegisterUser_EmailAlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).
		Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "super-secret",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	password := "correct horse battery staple"
	stored := models.User{
		UserID:       7,
		Email:        "alice@example.com",
		PasswordHash: mustHash(t, password),
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}

	gomock.InOrder(
		mockRepo.EXPECT().FindUserByEmail(ctx, stored.Email).Return(stored, nil),
		mockRepo.EXPECT().UpdateLastLogin(ctx, stored.UserID, gomock.Any()).Return(nil),
	)

	user, err := svc.Login(ctx, stored.Email, password)
	require.NoError(t, err)
	assert.Equal(t, stored.UserID, user.UserID)
	assert.False(t, user.LastLoginAt.IsZero())
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().FindUserByEmail(ctx, "ghost@example.com").
		Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(ctx, "ghost@example.com", "whatever")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestAuthService_Login_BlockedBeforePasswordCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	password := "correct-password"
	blocked := models.User{
		UserID:       9,
		Email:        "blocked@example.com",
		PasswordHash: mustHash(t, password),
		Status:       models.StatusBlocked,
	}

	mockRepo.EXPECT().FindUserByEmail(ctx, blocked.Email).Return(blocked, nil).Times(2)

	// valid credentials still fail for a blocked account
	_, err := svc.Login(ctx, blocked.Email, password)
	assert.ErrorIs(t, err, ErrUserBlocked)

	// and the error is the same with wrong credentials
	_, err = svc.Login(ctx, blocked.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{
		UserID:       7,
		Email:        "alice@example.com",
		PasswordHash: mustHash(t, "right-password"),
		Status:       models.StatusActive,
	}

	mockRepo.EXPECT().FindUserByEmail(ctx, stored.Email).Return(stored, nil)

	_, err := svc.Login(ctx, stored.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_LastLoginUpdateFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	password := "super-secret"
	stored := models.User{
		UserID:       7,
		Email:        "alice@example.com",
		PasswordHash: mustHash(t, password),
		Status:       models.StatusActive,
	}

	gomock.InOrder(
		mockRepo.EXPECT().FindUserByEmail(ctx, stored.Email).Return(stored, nil),
		mockRepo.EXPECT().UpdateLastLogin(ctx, stored.UserID, gomock.Any()).
			Return(errors.New("connection reset")),
	)

	user, err := svc.Login(ctx, stored.Email, password)
	require.NoError(t, err)
	assert.Equal(t, stored.UserID, user.UserID)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "password")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(ctx, "alice@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── CreateToken / ParseToken ─────────────────────────────────────────────────

func TestAuthService_CreateToken_ParseToken_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockRevoked := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 15, Email: "alice@example.com", Role: models.RoleAdmin}

	token, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	mockRevoked.EXPECT().Contains(ctx, token.SignedString).Return(false, nil)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, parsed.UserID)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
}

func TestAuthService_ParseToken_Revoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockRevoked := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 15, Role: models.RoleUser})
	require.NoError(t, err)

	mockRevoked.EXPECT().Contains(ctx, token.SignedString).Return(true, nil)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	svc.tokenDuration = time.Millisecond
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 15, Role: models.RoleUser})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// the revocation store must not be consulted for a token that fails
	// cryptographic validation
	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.ParseToken(ctx, "not-a-jwt-at-all")
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}

func TestAuthService_ParseToken_WrongIssuer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	otherSvc := &authService{
		tokenSignKey:  testSignKey,
		tokenIssuer:   "some-other-service",
		tokenDuration: time.Hour,
		logger:        logger.Nop(),
	}
	token, err := otherSvc.CreateToken(ctx, models.User{UserID: 15, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}

// ── RevokeToken ──────────────────────────────────────────────────────────────

func TestAuthService_RevokeToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockRevoked := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 15, Role: models.RoleUser})
	require.NoError(t, err)

	gomock.InOrder(
		mockRevoked.EXPECT().Contains(ctx, token.SignedString).Return(false, nil),
		mockRevoked.EXPECT().Add(ctx, token.SignedString, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, expiresAt time.Time) error {
				assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)
				return nil
			},
		),
	)

	err = svc.RevokeToken(ctx, token.SignedString)
	require.NoError(t, err)
}

func TestAuthService_RevokeToken_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	err := svc.RevokeToken(ctx, "not-a-jwt-at-all")
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}

func TestAuthService_RevokeToken_AlreadyRevoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockRevoked := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 15, Role: models.RoleUser})
	require.NoError(t, err)

	mockRevoked.EXPECT().Contains(ctx, token.SignedString).Return(true, nil)

	err = svc.RevokeToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthService_RevokeToken_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockRevoked := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 15, Role: models.RoleUser})
	require.NoError(t, err)

	gomock.InOrder(
		mockRevoked.EXPECT().Contains(ctx, token.SignedString).Return(false, nil),
		mockRevoked.EXPECT().Add(ctx, token.SignedString, gomock.Any()).
			Return(errors.New("redis: connection refused")),
	)

	err = svc.RevokeToken(ctx, token.SignedString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adding token to revocation store failed")
}
