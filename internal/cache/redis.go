package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Reference-data cache keys. These lookup tables change rarely and back
// every booking form dropdown, so they get long TTLs.
const (
	AirportsKey      = "ref:airports"
	TourOperatorsKey = "ref:tour_operators"
	CruiseLinesKey   = "ref:cruise_lines"

	ReferenceTTL = 12 * time.Hour
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection degrades
// gracefully: every helper no-ops on a nil client and callers fall
// through to the database.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateReferenceCaches clears every reference-data cache. Called
// when the lookup tables are reloaded.
func InvalidateReferenceCaches(ctx context.Context) {
	InvalidatePattern(ctx, "ref:*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
