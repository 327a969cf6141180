package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkhasanov/go-user-guard/internal/config"
	"github.com/mkhasanov/go-user-guard/internal/logger"
)

// revokedKeyPrefix namespaces revocation entries inside a Redis instance
// shared with other applications.
const revokedKeyPrefix = "revoked:"

// RedisStore is the shared [Store] implementation backed by Redis.
// Entries are written with a TTL equal to the token's remaining lifetime,
// so Redis expires them on its own and no sweep worker is needed.
type RedisStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisStore connects to the Redis instance described by cfg and verifies
// the connection with a ping. Returns an error if Redis is unreachable: the
// revocation store is a correctness dependency, not an optional cache, so a
// broken connection is a startup failure.
func NewRedisStore(ctx context.Context, cfg config.Revocation, log *logger.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisStore").Str("addr", cfg.RedisAddress).Msg("error connecting revocation store (ping)")
		return nil, fmt.Errorf("error connecting revocation store: %w", err)
	}
	log.Info().Str("func", "NewRedisStore").Str("addr", cfg.RedisAddress).Msg("connected to revocation store successfully")

	return &RedisStore{client: client, logger: log}, nil
}

// Add marks token as revoked for its remaining lifetime. Tokens already past
// expiresAt are not stored at all: they fail signature validation anyway.
func (s *RedisStore) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("error adding token to revocation store: %w", err)
	}

	return nil
}

// Contains reports whether token is present in the revocation set.
func (s *RedisStore) Contains(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("error checking token in revocation store: %w", err)
	}

	return n > 0, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
