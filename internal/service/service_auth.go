package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkhasanov/go-user-guard/internal/config"
	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/revocation"
	"github.com/mkhasanov/go-user-guard/internal/store"
	"github.com/mkhasanov/go-user-guard/internal/utils"
	"github.com/mkhasanov/go-user-guard/internal/validators"
	"github.com/mkhasanov/go-user-guard/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, account-status
// gating, and the JWT token lifecycle using a UserRepository for persistence,
// bcrypt for password hashing, and a revocation store for logout.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// revoked is consulted on every token verification before the token's
	// signature validity is trusted, and written to on logout.
	revoked revocation.Store

	// validator checks registration and login input before any hashing or
	// storage work happens.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and revocation store, populated with security parameters
// from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction except the injected revocation store, which guards its
// own concurrency.
func NewAuthService(userRepository store.UserRepository, revoked revocation.Store, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		revoked:        revoked,
		validator:      validators.NewUserValidator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates the request (non-empty name and password, well-formed email),
// derives the bcrypt hash of the password, and persists the record with
// status=active, the default user role, and creation/last-login timestamps
// set to now.
//
// No token is issued here: token issuance is a separate CreateToken call made
// by the handler only after the record exists, so a failed insert leaves no
// partial state behind.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided (wrapping the validator's error) if any field
//     fails validation.
//   - A wrapped storage error if the repository call fails (e.g. email already
//     taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("email", req.Email).Msg("invalid registration data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	now := time.Now()
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		LastLoginAt:  now,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", registeredUser.UserID).Str("email", registeredUser.Email).Msg("user registered")

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// The account-status check runs before password verification: blocked
// accounts never authenticate regardless of credential validity, and the
// failure mode must not depend on whether the password happened to be right.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided (wrapping the validator's error) if email or
//     password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrNoUserWasFound).
//   - ErrUserBlocked if the account status is blocked.
//   - ErrWrongPassword if the bcrypt comparison fails.
//
// On success the account's last-login timestamp is updated.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.LoginRequest{Email: email, Password: password}); err != nil {
		log.Err(err).Str("email", email).Msg("invalid login data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if foundUser.Status == models.StatusBlocked {
		log.Warn().
			Int64("user_id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("blocked account attempted to log in")
		return models.User{}, ErrUserBlocked
	}

	if !utils.VerifyPassword(password, foundUser.PasswordHash) {
		log.Warn().
			Int64("user_id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	now := time.Now()
	if err := a.userRepository.UpdateLastLogin(ctx, foundUser.UserID, now); err != nil {
		// the user has already proven their identity; a failed bookkeeping
		// update is logged but does not fail the login
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("last login update failed")
	} else {
		foundUser.LastLoginAt = now
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim and the user's role as the "role" claim, and
// expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Validation happens in two stages: cryptographic verification (signature,
// issuer, expiry) via utils.ValidateAndParseJWTToken, then a revocation-store
// lookup. A token that passes signature checks but has been revoked by logout
// fails with ErrTokenRevoked.
//
// Returns the decoded token model on success or:
//   - ErrTokenIsExpired if the token is past its expiry.
//   - ErrTokenIsInvalid on any other validation failure.
//   - ErrTokenRevoked if the token is in the revocation store.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsInvalid
	}

	isRevoked, err := a.revoked.Contains(ctx, tokenString)
	if err != nil {
		log.Err(err).Msg("revocation store lookup failed")
		return models.Token{}, fmt.Errorf("revocation store lookup failed: %w", err)
	}
	if isRevoked {
		return models.Token{}, ErrTokenRevoked
	}

	return token, nil
}

// RevokeToken implements logout: the token is verified first (revoking an
// invalid or already-expired token is rejected the same way authenticating
// with it would be) and then recorded in the revocation store until its
// natural expiry.
func (a *authService) RevokeToken(ctx context.Context, tokenString string) error {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return err
	}

	expiresAt, expErr := token.GetExpirationTime()
	if expErr != nil || expiresAt == nil {
		return ErrTokenIsInvalid
	}

	if err := a.revoked.Add(ctx, tokenString, expiresAt.Time); err != nil {
		log.Err(err).Int64("user_id", token.UserID).Msg("adding token to revocation store failed")
		return fmt.Errorf("adding token to revocation store failed: %w", err)
	}

	log.Info().Int64("user_id", token.UserID).Msg("token revoked")

	return nil
}
