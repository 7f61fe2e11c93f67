package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // String conversion
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// CacheVersion returns the current cache version for a key space.
// Bumping the version with BumpCacheVersion invalidates every cached
// entry built against the old version, without enumerating keys.
func CacheVersion(ctx context.Context, rdb *redis.Client, space string) string {
	v, err := rdb.Get(ctx, space+":version").Int64()
	if err != nil {
		return "0" // Missing version reads as zero
	}
	return strconv.FormatInt(v, 10)
}

// BumpCacheVersion invalidates a key space by incrementing its version
func BumpCacheVersion(ctx context.Context, rdb *redis.Client, space string) error {
	return rdb.Incr(ctx, space+":version").Err()
}
