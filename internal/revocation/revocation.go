// Package revocation provides the token-revocation store consulted on every
// authenticated request before a token's signature validity is trusted.
//
// Two implementations exist: a process-local in-memory store and a Redis-backed
// store. The in-memory store is best-effort and explicitly NOT distributed-safe:
// it is cleared on restart and invisible to other instances. Multi-instance
// deployments must configure the Redis store instead.
package revocation

import (
	"context"
	"sync"
	"time"
)

// Store records revoked tokens until their natural expiry.
//
// Implementations must be safe for concurrent use: multiple requests may
// revoke and check tokens at the same time.
type Store interface {
	// Add marks token as revoked until expiresAt. Entries past expiresAt may
	// be dropped at any point because an expired token fails signature
	// validation before the store is ever consulted.
	Add(ctx context.Context, token string, expiresAt time.Time) error

	// Contains reports whether token has been revoked and is still within
	// its original lifetime.
	Contains(ctx context.Context, token string) (bool, error)
}

// MemoryStore is the process-local [Store] implementation: a mutex-guarded
// map from token string to its expiry instant.
type MemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryStore constructs an empty in-memory revocation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
	}
}

// Add marks token as revoked until expiresAt.
func (s *MemoryStore) Add(_ context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[token] = expiresAt
	return nil
}

// Contains reports whether token is revoked and not yet past its expiry.
func (s *MemoryStore) Contains(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.revoked[token]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	return time.Now().Before(expiresAt), nil
}

// Purge removes every entry whose expiry has passed and returns the number
// of entries removed. Called periodically by the sweep worker so that the
// map does not grow unbounded in long-running processes.
func (s *MemoryStore) Purge(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, expiresAt := range s.revoked {
		if !now.Before(expiresAt) {
			delete(s.revoked, token)
			removed++
		}
	}

	return removed
}

// Len returns the current number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}
