package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/ports"
)

type MarketService struct {
	api   ports.MarketAPI
	clock Clock
}

func NewMarketService(api ports.MarketAPI, clock Clock) *MarketService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &MarketService{api: api, clock: clock}
}

// List returns markets whose question contains search (case-insensitive),
// open markets first, then by close time.
func (s *MarketService) List(ctx context.Context, token, search string) ([]*domain.Market, error) {
	markets, err := s.api.ListMarkets(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}

	return FilterMarkets(markets, search, s.clock.Now()), nil
}

// FilterMarkets applies the search box and the display order to markets.
// The input slice is not modified.
func FilterMarkets(markets []*domain.Market, search string, now time.Time) []*domain.Market {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]*domain.Market, 0, len(markets))
	for _, m := range markets {
		if m == nil {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(m.Question), needle) {
			continue
		}
		out = append(out, m)
	}

	slices.SortStableFunc(out, func(a, b *domain.Market) int {
		aOpen, bOpen := a.IsOpen(now), b.IsOpen(now)
		if aOpen != bOpen {
			if aOpen {
				return -1
			}
			return 1
		}
		if c := compareCloseTimes(a.ClosesAt, b.ClosesAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return out
}

// Markets without a close time sort last.
func compareCloseTimes(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return a.Compare(b)
}

func findMarket(markets []*domain.Market, id string) (*domain.Market, bool) {
	for _, m := range markets {
		if m != nil && m.ID == id {
			return m, true
		}
	}
	return nil, false
}
