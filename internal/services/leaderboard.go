package services

import (
	"context"
	"fmt"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/ports"
)

type LeaderboardService struct {
	api ports.MarketAPI
}

func NewLeaderboardService(api ports.MarketAPI) *LeaderboardService {
	return &LeaderboardService{api: api}
}

// List returns the ranked leaderboard. When limit > 0 only the top limit
// entries are returned.
func (s *LeaderboardService) List(ctx context.Context, token string, limit int) ([]*domain.LeaderboardEntry, error) {
	entries, err := s.api.Leaderboard(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	ranked := domain.RankLeaderboard(entries)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
