package services

import (
	"context"
	"fmt"
	"slices"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/platform/obs"
	"campus-market-service/internal/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PortfolioPosition is a position joined with the market it is on. Question
// and Status are empty when the market is no longer listed.
type PortfolioPosition struct {
	domain.Position
	Question string
	Status   domain.MarketStatus
	Open     bool
}

type Portfolio struct {
	Balance       int64
	Positions     []PortfolioPosition
	TotalStaked   int64
	OpenPositions int
}

type PortfolioService struct {
	api    ports.MarketAPI
	clock  Clock
	logger *zap.Logger
}

func NewPortfolioService(api ports.MarketAPI, clock Clock, logger *zap.Logger) *PortfolioService {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioService{api: api, clock: clock, logger: logger}
}

// Build fetches the session, ledger and markets concurrently and aggregates
// the user's trades into positions.
func (s *PortfolioService) Build(ctx context.Context, token string) (_ *Portfolio, err error) {
	defer obs.Time(ctx, s.logger, "portfolio.Build")(&err)

	var (
		session *domain.Session
		ledger  []*domain.LedgerEntry
		markets []*domain.Market
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		session, err = s.api.Session(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = s.api.Ledger(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		markets, err = s.api.ListMarkets(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build portfolio: %w", err)
	}

	now := s.clock.Now()
	p := &Portfolio{Balance: session.Balance}
	for _, pos := range domain.AggregatePositions(ledger) {
		line := PortfolioPosition{Position: *pos}
		if m, ok := findMarket(markets, pos.MarketID); ok {
			line.Question = m.Question
			line.Status = m.Status
			line.Open = m.IsOpen(now)
		}

		p.TotalStaked += pos.Staked
		if line.Open {
			p.OpenPositions++
		}
		p.Positions = append(p.Positions, line)
	}

	return p, nil
}

// Ledger returns the user's ledger history, newest first.
func (s *PortfolioService) Ledger(ctx context.Context, token string) ([]*domain.LedgerEntry, error) {
	entries, err := s.api.Ledger(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("ledger history: %w", err)
	}

	return SortLedgerNewestFirst(entries), nil
}

// SortLedgerNewestFirst orders entries by creation time, newest first.
// Entries with equal times keep the remote order reversed, since the remote
// ledger is appended chronologically. Nil entries are dropped.
func SortLedgerNewestFirst(entries []*domain.LedgerEntry) []*domain.LedgerEntry {
	entries = slices.DeleteFunc(entries, func(e *domain.LedgerEntry) bool { return e == nil })
	slices.Reverse(entries)
	slices.SortStableFunc(entries, func(a, b *domain.LedgerEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return entries
}
