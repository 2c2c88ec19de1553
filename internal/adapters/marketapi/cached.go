package marketapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/ports"

	"go.uber.org/zap"
)

// CachingAPI wraps a MarketAPI with cache-aside reads for the market list and
// the leaderboard, which are the same for every user. A successful trade
// invalidates both. Cache failures are logged and never fail the call.
//
// Cached data is only served to tokens the remote API has accepted within
// TokenTTL. Unknown tokens are checked with a Session call first.
type CachingAPI struct {
	ports.MarketAPI
	cache  ports.MarketCache
	logger *zap.Logger

	TokenTTL time.Duration
	Now      func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time
}

var _ ports.MarketAPI = (*CachingAPI)(nil)

const (
	defaultTokenTTL = 30 * time.Second
	tokenSweepSize  = 1024
)

func NewCachingAPI(api ports.MarketAPI, cache ports.MarketCache, logger *zap.Logger) *CachingAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingAPI{
		MarketAPI: api,
		cache:     cache,
		logger:    logger,
		TokenTTL:  defaultTokenTTL,
		Now:       time.Now,
		tokens:    make(map[string]time.Time),
	}
}

func (c *CachingAPI) tokenValid(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires, ok := c.tokens[token]
	if !ok {
		return false
	}
	if !c.Now().Before(expires) {
		delete(c.tokens, token)
		return false
	}
	return true
}

func (c *CachingAPI) markToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.Now()
	if len(c.tokens) >= tokenSweepSize {
		for t, exp := range c.tokens {
			if !now.Before(exp) {
				delete(c.tokens, t)
			}
		}
	}
	c.tokens[token] = now.Add(c.TokenTTL)
}

// authorize makes sure token is one the remote API accepts before cached
// data is returned for it.
func (c *CachingAPI) authorize(ctx context.Context, token string) error {
	if c.tokenValid(token) {
		return nil
	}
	if _, err := c.MarketAPI.Session(ctx, token); err != nil {
		return err
	}
	c.markToken(token)
	return nil
}

func (c *CachingAPI) ListMarkets(ctx context.Context, token string) ([]*domain.Market, error) {
	if c.cache != nil {
		markets, ok, err := c.cache.GetMarkets(ctx)
		if err != nil {
			c.logger.Warn("market cache read failed", zap.Error(err))
		} else if ok {
			if err := c.authorize(ctx, token); err != nil {
				return nil, fmt.Errorf("cached list markets: %w", err)
			}
			return markets, nil
		}
	}

	markets, err := c.MarketAPI.ListMarkets(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("cached list markets: %w", err)
	}
	c.markToken(token)

	if c.cache != nil {
		if err := c.cache.PutMarkets(ctx, markets); err != nil {
			c.logger.Warn("market cache write failed", zap.Error(err))
		}
	}
	return markets, nil
}

func (c *CachingAPI) Leaderboard(ctx context.Context, token string) ([]*domain.LeaderboardEntry, error) {
	if c.cache != nil {
		entries, ok, err := c.cache.GetLeaderboard(ctx)
		if err != nil {
			c.logger.Warn("leaderboard cache read failed", zap.Error(err))
		} else if ok {
			if err := c.authorize(ctx, token); err != nil {
				return nil, fmt.Errorf("cached leaderboard: %w", err)
			}
			return entries, nil
		}
	}

	entries, err := c.MarketAPI.Leaderboard(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("cached leaderboard: %w", err)
	}
	c.markToken(token)

	if c.cache != nil {
		if err := c.cache.PutLeaderboard(ctx, entries); err != nil {
			c.logger.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}

func (c *CachingAPI) PlaceTrade(ctx context.Context, token string, req domain.TradeRequest) (*domain.TradeResult, error) {
	result, err := c.MarketAPI.PlaceTrade(ctx, token, req)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.InvalidateMarkets(ctx); err != nil {
			c.logger.Warn("market cache invalidate failed", zap.Error(err))
		}
		if err := c.cache.InvalidateLeaderboard(ctx); err != nil {
			c.logger.Warn("leaderboard cache invalidate failed", zap.Error(err))
		}
	}
	return result, nil
}
