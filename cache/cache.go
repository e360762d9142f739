// Package cache is a best-effort JSON cache on Redis. When no client is
// configured every operation is a no-op, so callers never branch on
// availability.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// Connect wires the package to a Redis instance. Call once from main when
// REDIS_ADDR is set.
func Connect(addr string) {
	rdb = redis.NewClient(&redis.Options{Addr: addr})
}

// Get unmarshals the cached value into dest, reporting whether it was a
// hit. Any error is treated as a miss.
func Get(key string, dest interface{}) bool {
	if rdb == nil {
		return false
	}
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores the value under key with a TTL. Failures are ignored.
func Set(key string, value interface{}, ttl time.Duration) {
	if rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	rdb.Set(ctx, key, data, ttl)
}

// Invalidate drops the given keys.
func Invalidate(keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	rdb.Del(ctx, keys...)
}
