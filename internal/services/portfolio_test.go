package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioBuild(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	trades := NewTradeService(api, nil, fixedClock(testNow), nil)

	for _, req := range []PlaceTradeRequest{
		{MarketID: "rain", Side: "yes", Stake: 10},
		{MarketID: "rain", Side: "yes", Stake: 15},
		{MarketID: "rain", Side: "no", Stake: 5},
		{MarketID: "library", Side: "no", Stake: 20},
	} {
		_, err := trades.Place(ctx, "ada-token", req)
		require.NoError(t, err)
	}

	p, err := NewPortfolioService(api, fixedClock(testNow), nil).Build(ctx, "ada-token")
	require.NoError(t, err)

	assert.Equal(t, int64(50), p.Balance)
	assert.Equal(t, int64(50), p.TotalStaked)
	assert.Equal(t, 3, p.OpenPositions)
	require.Len(t, p.Positions, 3)

	assert.Equal(t, "library", p.Positions[0].MarketID)
	assert.Equal(t, domain.SideNo, p.Positions[0].Side)
	assert.Equal(t, "Will the library stay open 24h during finals?", p.Positions[0].Question)

	assert.Equal(t, "rain", p.Positions[1].MarketID)
	assert.Equal(t, domain.SideNo, p.Positions[1].Side)
	assert.Equal(t, int64(5), p.Positions[1].Staked)

	assert.Equal(t, domain.SideYes, p.Positions[2].Side)
	assert.Equal(t, int64(25), p.Positions[2].Staked)
	assert.Equal(t, 2, p.Positions[2].Trades)
	assert.True(t, p.Positions[2].Open)
	assert.Equal(t, domain.MarketOpen, p.Positions[2].Status)
}

func TestPortfolioBuildPropagatesErrors(t *testing.T) {
	api := newTestAPI(t)
	api.Err = ports.ErrUpstream

	_, err := NewPortfolioService(api, fixedClock(testNow), nil).Build(context.Background(), "ada-token")
	assert.True(t, errors.Is(err, ports.ErrUpstream))
}

func TestPortfolioLedgerNewestFirst(t *testing.T) {
	api := newTestAPI(t)
	api.AddInvite("BONUS123", 50)
	_, err := api.RedeemInvite(context.Background(), "ada-token", "BONUS123")
	require.NoError(t, err)

	entries, err := NewPortfolioService(api, fixedClock(testNow), nil).Ledger(context.Background(), "ada-token")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(50), entries[0].Amount)
	assert.Equal(t, int64(100), entries[1].Amount)
}

func TestSortLedgerNewestFirst(t *testing.T) {
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	in := []*domain.LedgerEntry{
		{ID: "a", CreatedAt: base},
		nil,
		{ID: "c", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b", CreatedAt: base.Add(time.Hour)},
		{ID: "b2", CreatedAt: base.Add(time.Hour)},
	}

	got := SortLedgerNewestFirst(in)
	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"c", "b2", "b", "a"}, ids)
}
