package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are absent from every source.
var (
	// ErrMissingTokenSignKey indicates that no token signing key was supplied
	// by any configuration source. Tokens cannot be issued or verified
	// without it, so startup is aborted.
	ErrMissingTokenSignKey = errors.New("token signing key is not configured")

	// ErrMissingDatabaseDSN indicates that no database connection string was
	// supplied by any configuration source.
	ErrMissingDatabaseDSN = errors.New("database DSN is not configured")
)
