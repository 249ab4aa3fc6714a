// Package redis implements the leaderboard cache on Redis. The leaderboard is
// kept as a sorted set scored by XP, so ordering comes from Redis itself and
// levels are recomputed from the rank table on read.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password is optional.
	Password string

	// DB is the logical database index.
	DB int

	// TTL bounds how long a cached leaderboard stays warm.
	TTL time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(addr string) Config {
	return Config{
		Addr: addr,
		TTL:  5 * time.Minute,
	}
}

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD CACHE
// ══════════════════════════════════════════════════════════════════════════════

// leaderboardKey is the sorted set holding userID -> XP.
const leaderboardKey = "cinema:leaderboard"

// LeaderboardCache implements progression.LeaderboardCache on a Redis sorted
// set.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewLeaderboardCache creates the cache.
func NewLeaderboardCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *LeaderboardCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("cache", "leaderboard"),
	}
}

// Top returns up to limit cached entries by XP descending. A missing key means
// the cache is cold and the caller should fall through to the store.
func (c *LeaderboardCache) Top(ctx context.Context, limit int) ([]progression.LeaderboardEntry, error) {
	exists, err := c.client.Exists(ctx, leaderboardKey).Result()
	if err != nil {
		return nil, shared.WrapError("progression", "CacheTop", shared.ErrStorage, "check leaderboard key", err)
	}
	if exists == 0 {
		return nil, shared.NewDomainError("progression", "CacheTop", shared.ErrNotFound, "leaderboard cache is cold")
	}

	members, err := c.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, shared.WrapError("progression", "CacheTop", shared.ErrStorage, "read leaderboard zset", err)
	}

	entries := make([]progression.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		userID, ok := m.Member.(string)
		if !ok {
			continue
		}
		xp := progression.XP(m.Score)
		entries = append(entries, progression.LeaderboardEntry{
			UserID: progression.UserID(userID),
			XP:     xp,
			Level:  progression.ComputeLevel(xp),
		})
	}
	return entries, nil
}

// Set replaces the cached entries atomically via a pipeline.
func (c *LeaderboardCache) Set(ctx context.Context, entries []progression.LeaderboardEntry) error {
	members := make([]redis.Z, 0, len(entries))
	for _, e := range entries {
		members = append(members, redis.Z{
			Score:  float64(e.XP),
			Member: e.UserID.String(),
		})
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, leaderboardKey)
	if len(members) > 0 {
		pipe.ZAdd(ctx, leaderboardKey, members...)
		pipe.Expire(ctx, leaderboardKey, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return shared.WrapError("progression", "CacheSet", shared.ErrStorage, "write leaderboard zset", err)
	}
	return nil
}

// Invalidate drops the cached leaderboard.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, leaderboardKey).Err(); err != nil {
		return shared.WrapError("progression", "CacheInvalidate", shared.ErrStorage, "delete leaderboard key", err)
	}
	return nil
}
