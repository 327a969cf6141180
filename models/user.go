package models

import "time"

// UserStatus is the lifecycle state of a user account.
// Only admin batch operations may move an account between states.
type UserStatus string

const (
	// StatusActive marks an account that is allowed to authenticate.
	StatusActive UserStatus = "active"

	// StatusBlocked marks an account that must never authenticate,
	// regardless of credential validity.
	StatusBlocked UserStatus = "blocked"
)

// Valid reports whether s is one of the known account states.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusBlocked
}

// UserRole is the authorization level carried in issued tokens.
type UserRole string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser UserRole = "user"

	// RoleAdmin grants access to the batch status-management endpoints.
	RoleAdmin UserRole = "admin"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user and the
	// canonical subject embedded in issued tokens.
	UserID int64 `json:"user_id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login key used during authentication.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext, and is never serialized.
	PasswordHash string `json:"-"`

	// Role controls access to the administrative endpoints.
	Role UserRole `json:"role"`

	// Status gates authentication: blocked accounts never log in.
	Status UserStatus `json:"status"`

	// CreatedAt is the timestamp when the account was created. Immutable.
	CreatedAt time.Time `json:"created_at"`

	// LastLoginAt is updated on every successful login.
	LastLoginAt time.Time `json:"last_login_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
