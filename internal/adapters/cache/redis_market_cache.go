package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/platform/obs"
	"campus-market-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	marketsKey     = "campus:markets"
	leaderboardKey = "campus:leaderboard"
)

// RedisMarketCache stores the shared market list and leaderboard as JSON
// values with a TTL.
type RedisMarketCache struct {
	RDB *redis.Client
	TTL time.Duration
}

var _ ports.MarketCache = (*RedisMarketCache)(nil)

func NewRedisMarketCache(rdb *redis.Client, ttl time.Duration) *RedisMarketCache {
	return &RedisMarketCache{RDB: rdb, TTL: ttl}
}

func (r *RedisMarketCache) GetMarkets(ctx context.Context) ([]*domain.Market, bool, error) {
	var markets []*domain.Market
	ok, err := r.get(ctx, marketsKey, &markets)
	obs.CacheLookup("markets", ok)
	if err != nil || !ok {
		return nil, false, err
	}
	return markets, true, nil
}

func (r *RedisMarketCache) PutMarkets(ctx context.Context, markets []*domain.Market) error {
	return r.put(ctx, marketsKey, markets)
}

func (r *RedisMarketCache) InvalidateMarkets(ctx context.Context) error {
	return r.del(ctx, marketsKey)
}

func (r *RedisMarketCache) GetLeaderboard(ctx context.Context) ([]*domain.LeaderboardEntry, bool, error) {
	var entries []*domain.LeaderboardEntry
	ok, err := r.get(ctx, leaderboardKey, &entries)
	obs.CacheLookup("leaderboard", ok)
	if err != nil || !ok {
		return nil, false, err
	}
	return entries, true, nil
}

func (r *RedisMarketCache) PutLeaderboard(ctx context.Context, entries []*domain.LeaderboardEntry) error {
	return r.put(ctx, leaderboardKey, entries)
}

func (r *RedisMarketCache) InvalidateLeaderboard(ctx context.Context) error {
	return r.del(ctx, leaderboardKey)
}

func (r *RedisMarketCache) get(ctx context.Context, key string, out any) (bool, error) {
	if r.RDB == nil {
		return false, errors.New("redis cache: client is nil")
	}

	raw, err := r.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis cache: get %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		// A value we cannot read is treated as a miss and dropped.
		_ = r.RDB.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (r *RedisMarketCache) put(ctx context.Context, key string, v any) error {
	if r.RDB == nil {
		return errors.New("redis cache: client is nil")
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis cache: encode %q: %w", key, err)
	}

	if err := r.RDB.Set(ctx, key, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("redis cache: set %q: %w", key, err)
	}
	return nil
}

func (r *RedisMarketCache) del(ctx context.Context, key string) error {
	if r.RDB == nil {
		return errors.New("redis cache: client is nil")
	}

	if err := r.RDB.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis cache: delete %q: %w", key, err)
	}
	return nil
}
