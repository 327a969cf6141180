package models

// RegisterRequest is the JSON body accepted by POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body accepted by POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// SubjectResponse is returned by authenticated example endpoints and
// identifies the caller the presented token was issued for.
type SubjectResponse struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
}

// BatchRequest is the JSON body accepted by the admin batch endpoints.
type BatchRequest struct {
	UserIDs []int64 `json:"user_ids"`
}

// BatchItemResult reports the outcome of a batch operation for a single
// requested identifier. Applied is false when the identifier did not match
// any stored account.
type BatchItemResult struct {
	UserID  int64 `json:"user_id"`
	Applied bool  `json:"applied"`
}

// BatchResult aggregates the outcome of one admin batch operation.
// Count is the number of records actually changed; Results carries the
// per-identifier breakdown in request order.
type BatchResult struct {
	Count   int               `json:"count"`
	Results []BatchItemResult `json:"results"`
}
