// Package cache coordinates seed runs with the application's Redis cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"alxtravel/internal/observability"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

const (
	// SeedLockKey guards against concurrent seed runs.
	SeedLockKey = "seed:lock"

	ListingKeyPrefix  = "listing:%d"
	ListingsKeyPrefix = "listings:"
)

// listingPatterns match every key the application caches listing data under.
var listingPatterns = []string{"listing:*", ListingsKeyPrefix + "*"}

// ErrSeedInProgress is returned when another seed run holds the lock.
var ErrSeedInProgress = errors.New("another seed run is in progress")

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// NewClient builds a redis client from a REDIS_URL-like string and pings it.
func NewClient(ctx context.Context, raw string) (*redis.Client, error) {
	opts, err := clientOptions(raw)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// clientOptions accepts either a plain `host:port` or a `redis://`/`rediss://`
// URL. Maintenance notifications are disabled so servers that lack the
// subcommand do not fail the handshake.
func clientOptions(raw string) (*redis.Options, error) {
	opts := &redis.Options{Addr: raw}
	if strings.Contains(raw, "://") {
		parsed, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", raw, err)
		}
		opts = parsed
	}
	opts.MaintNotificationsConfig = &maintnotifications.Config{Mode: maintnotifications.ModeDisabled}
	return opts, nil
}

// ListingKey is the cache key of a single listing.
func ListingKey(listingID uint) string {
	return fmt.Sprintf(ListingKeyPrefix, listingID)
}

// Coordinator locks seed runs and drops stale listing caches. A Coordinator
// with a nil client does nothing.
type Coordinator struct {
	client *redis.Client
	logger *slog.Logger
}

// NewCoordinator wraps client; client may be nil when Redis is not configured.
func NewCoordinator(client *redis.Client, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = observability.Logger
	}
	return &Coordinator{client: client, logger: logger}
}

// AcquireSeedLock takes the seed lock for owner, expiring after ttl.
func (c *Coordinator) AcquireSeedLock(ctx context.Context, owner string, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	ok, err := c.client.SetNX(ctx, SeedLockKey, owner, ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire seed lock: %w", err)
	}
	if !ok {
		return ErrSeedInProgress
	}
	c.logger.DebugContext(ctx, "seed lock acquired", slog.String("owner", owner), slog.Duration("ttl", ttl))
	return nil
}

// ReleaseSeedLock deletes the seed lock if owner still holds it.
func (c *Coordinator) ReleaseSeedLock(ctx context.Context, owner string) error {
	if c.client == nil {
		return nil
	}
	if err := releaseScript.Run(ctx, c.client, []string{SeedLockKey}, owner).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release seed lock: %w", err)
	}
	return nil
}

// InvalidateListings deletes every cached listing key and returns how many were removed.
func (c *Coordinator) InvalidateListings(ctx context.Context) (int, error) {
	if c.client == nil {
		return 0, nil
	}

	removed := 0
	for _, pattern := range listingPatterns {
		var keys []string
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return removed, fmt.Errorf("scan %s: %w", pattern, err)
		}
		if len(keys) == 0 {
			continue
		}
		n, err := c.client.Del(ctx, keys...).Result()
		if err != nil {
			return removed, fmt.Errorf("delete %s: %w", pattern, err)
		}
		removed += int(n)
	}

	c.logger.InfoContext(ctx, "listing cache invalidated", slog.Int("keys", removed))
	return removed, nil
}
