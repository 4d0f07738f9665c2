package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const statusKeyPrefix = "status:"

// GetCachedStatus returns the cached public-status payload for a
// complaint number, or "" when there is no cache entry (or no Redis).
func (s *Service) GetCachedStatus(ctx context.Context, number string) (string, error) {
	if s.Redis == nil {
		return "", nil
	}
	payload, err := s.Redis.Get(ctx, statusKeyPrefix+number).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payload, nil
}

// SetCachedStatus stores the public-status payload with a TTL.
func (s *Service) SetCachedStatus(ctx context.Context, number, payload string, ttl time.Duration) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Set(ctx, statusKeyPrefix+number, payload, ttl).Err()
}

// InvalidateStatus drops the cached projection after an admin update.
func (s *Service) InvalidateStatus(ctx context.Context, number string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, statusKeyPrefix+number).Err()
}

// IncrWindow bumps a rate-limit counter, setting the window expiry on the
// first hit. Without Redis it reports zero, which never trips a limit.
func (s *Service) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	if s.Redis == nil {
		return 0, nil
	}
	n, err := s.Redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.Redis.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
