// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marat Khasanov

package config

import "time"

const (
	defaultHTTPAddress    = "localhost:8080"
	defaultTokenIssuer    = "go-user-guard"
	defaultTokenDuration  = time.Hour
	defaultRequestTimeout = 30 * time.Second
	defaultSweepInterval  = 5 * time.Minute
)

// applyDefaults fills in sane values for every optional field left empty by
// all configuration sources. Required fields (signing key, DSN) are left
// untouched so that validate can reject their absence.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}

	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}

	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = defaultTokenDuration
	}

	if cfg.Storage.Revocation.SweepInterval == 0 {
		cfg.Storage.Revocation.SweepInterval = defaultSweepInterval
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The token signing key and the database DSN have no usable defaults:
// their absence from every configuration source is a fatal startup error,
// never a per-request one.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrMissingDatabaseDSN
	}

	return nil
}
