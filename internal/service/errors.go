package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrUserBlocked         = errors.New("user is blocked")
	ErrInvalidStatus       = errors.New("invalid account status")

	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenRevoked        = errors.New("token is revoked")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrNoUserIDsProvided = errors.New("no user ids provided")
)
