package ports

import (
	"campus-market-service/internal/domain"
	"context"
)

// Shared cache for data that is the same for every user.
// A miss is reported as ok=false with a nil error.
type MarketCache interface {
	GetMarkets(ctx context.Context) (markets []*domain.Market, ok bool, err error)
	PutMarkets(ctx context.Context, markets []*domain.Market) error
	InvalidateMarkets(ctx context.Context) error

	GetLeaderboard(ctx context.Context) (entries []*domain.LeaderboardEntry, ok bool, err error)
	PutLeaderboard(ctx context.Context, entries []*domain.LeaderboardEntry) error
	InvalidateLeaderboard(ctx context.Context) error
}
