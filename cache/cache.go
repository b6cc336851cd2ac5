// Package cache is a short-lived Redis cache for assembled trip plans, keyed
// by the request parameters. It is deliberately optional: with no Redis
// address configured every lookup misses and every store is a no-op.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"raahi/models"
)

type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.SugaredLogger
}

// New connects to Redis at addr. An empty addr returns a disabled cache.
func New(addr, password string, db int, ttl time.Duration, log *zap.SugaredLogger) *PlanCache {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	c := &PlanCache{ttl: ttl, log: log}
	if addr == "" {
		return c
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return c
}

// Key derives the deterministic cache key for a planning request.
func Key(prefs models.TripPreferences) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(prefs.FromLocation)),
		strings.ToLower(strings.TrimSpace(prefs.ToLocation)),
		prefs.DepartureDate,
		prefs.ReturnDate,
		strings.ToLower(prefs.TravelClass),
		string(prefs.Tier()),
		strings.ToLower(strings.Join(prefs.Interests, ",")),
	}
	return "plan:" + strings.Join(parts, ":")
}

// Get returns the cached plan for a key, or (nil, false) on miss, error or
// when the cache is disabled.
func (c *PlanCache) Get(ctx context.Context, key string) (*models.TripPlan, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("⚠️  Cache read failed for %s: %v", key, err)
		}
		return nil, false
	}

	var plan models.TripPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		c.log.Warnf("⚠️  Dropping corrupt cache entry %s: %v", key, err)
		c.client.Del(ctx, key)
		return nil, false
	}
	return &plan, true
}

// Set stores a plan under key for the configured TTL. Failures are logged
// and swallowed; caching is never worth failing a request over.
func (c *PlanCache) Set(ctx context.Context, key string, plan *models.TripPlan) {
	if c == nil || c.client == nil || plan == nil {
		return
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		c.log.Warnf("⚠️  Cache encode failed for %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("⚠️  Cache write failed for %s: %v", key, err)
	}
}

// Close releases the Redis connection.
func (c *PlanCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Ping verifies connectivity; disabled caches report themselves as such.
func (c *PlanCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}
