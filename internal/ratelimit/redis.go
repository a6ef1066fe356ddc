package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares rate-limit records across instances. Window expiry is
// delegated to Redis key TTLs, so stale identifiers clean themselves up.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps a Redis client. Keys are namespaced under
// "ratelimit:".
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

func (s *RedisStore) key(identifier string) string {
	return s.prefix + identifier
}

// Get reads the counter and derives ResetAt from the key's remaining TTL.
func (s *RedisStore) Get(ctx context.Context, identifier string) (*Record, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, s.key(identifier))
	ttlCmd := pipe.PTTL(ctx, s.key(identifier))
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("ratelimit: redis get: %w", err)
	}

	count, err := getCmd.Int()
	if err != nil {
		return nil, fmt.Errorf("ratelimit: redis count: %w", err)
	}
	ttl := ttlCmd.Val()
	if ttl <= 0 {
		// Key without expiry should not happen; treat as expired so the
		// limiter opens a fresh window.
		return nil, nil
	}
	return &Record{Count: count, ResetAt: time.Now().Add(ttl)}, nil
}

// Set writes the counter with a TTL running until ResetAt.
func (s *RedisStore) Set(ctx context.Context, identifier string, rec *Record) error {
	ttl := time.Until(rec.ResetAt)
	if ttl <= 0 {
		ttl = time.Millisecond
	}
	if err := s.client.Set(ctx, s.key(identifier), rec.Count, ttl).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis set: %w", err)
	}
	return nil
}

// Incr bumps the counter, keeping the key's existing TTL.
func (s *RedisStore) Incr(ctx context.Context, identifier string) (int, error) {
	count, err := s.client.Incr(ctx, s.key(identifier)).Result()
	if err != nil {
		return 0, fmt.Errorf("ratelimit: redis incr: %w", err)
	}
	return int(count), nil
}
