package redissvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisService wraps the shared redis client. It backs both the rate-limit
// counters and the short-lived response cache. The client is stateless and
// safe for concurrent use.
type RedisService struct {
	rdb *redis.Client
}

func NewRedisService(rdb *redis.Client) *RedisService {
	return &RedisService{rdb: rdb}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

// Get returns the integer value of a counter key. The second result is false
// when the key does not exist.
func (s *RedisService) Get(ctx context.Context, key string) (int64, bool, error) {
	v, err := s.rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// SetEx creates a key with the given value and time-to-live.
func (s *RedisService) SetEx(ctx context.Context, key string, value int64, ttl time.Duration) error {
	return s.rdb.SetEx(ctx, key, value, ttl).Err()
}

// Incr increments a counter key.
func (s *RedisService) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

// CacheGet returns a cached response body, or false when absent.
func (s *RedisService) CacheGet(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// CacheSet stores a response body under key for the given time-to-live.
func (s *RedisService) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.SetEx(ctx, key, value, ttl).Err()
}

// CacheKey builds a deterministic cache key from the endpoint name, an
// optional user id and the request parameters. Parameters are sorted so the
// same query always maps to the same key.
func CacheKey(endpoint string, userID int, params map[string]string) string {
	parts := []string{endpoint}
	if userID != 0 {
		parts = append(parts, fmt.Sprintf("user:%d", userID))
	}

	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%s", k, params[k]))
	}

	return strings.Join(parts, ":")
}
