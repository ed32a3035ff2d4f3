package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetJSON fetches key and unmarshals it into dest. Returns false on a miss
// or when the cache is unavailable.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt entry, drop it
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// Failures are swallowed; the cache is best-effort.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// GetInt fetches an integer counter. Returns (0, false) on a miss.
func GetInt(ctx context.Context, key string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	n, err := client.Get(ctx, key).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return 0, false
		}
		return 0, false
	}
	return n, true
}

// SetInt stores an integer counter with the given TTL.
func SetInt(ctx context.Context, key string, n int64, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, n, ttl)
}
