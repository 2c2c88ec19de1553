package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campus-market-service/internal/adapters/marketapi"
	"campus-market-service/internal/domain"
)

var pacific = mustLoad("America/Los_Angeles")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// stepClock returns now and then advances it by step on every call.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Wed Oct 21 2026, 10:00 Pacific.
var testNow = time.Date(2026, 10, 21, 10, 0, 0, 0, pacific)

func newTestAPI(t *testing.T) *marketapi.MockMarketAPI {
	t.Helper()

	api := marketapi.NewMockMarketAPI(func() time.Time { return testNow })
	api.AddSession("ada-token", domain.Session{Email: "ada@stanford.edu", Name: "Ada", Balance: 100})
	api.AddSession("grace-token", domain.Session{Email: "grace@mit.edu", Name: "Grace", Balance: 250})

	api.AddMarket(domain.Market{
		ID: "library", Question: "Will the library stay open 24h during finals?",
		Status: domain.MarketOpen, YesPrice: 0.7, ClosesAt: testNow.Add(72 * time.Hour),
	})
	api.AddMarket(domain.Market{
		ID: "rain", Question: "Rain at graduation?",
		Status: domain.MarketOpen, YesPrice: 0.2, ClosesAt: testNow.Add(24 * time.Hour),
	})
	api.AddMarket(domain.Market{
		ID: "quad", Question: "Will the quad fountain be fixed?",
		Status: domain.MarketClosed, ClosesAt: testNow.Add(-time.Hour),
	})
	api.AddMarket(domain.Market{
		ID: "expired", Question: "Library late fee waived?",
		Status: domain.MarketOpen, ClosesAt: testNow.Add(-time.Minute),
	})
	return api
}

type memReceipts struct {
	mu       sync.Mutex
	receipts []*domain.TradeReceipt
	err      error
}

func (m *memReceipts) SaveReceipt(ctx context.Context, r *domain.TradeReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.receipts = append(m.receipts, r)
	return nil
}

func (m *memReceipts) ListReceipts(ctx context.Context, email string, limit int) ([]*domain.TradeReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	var out []*domain.TradeReceipt
	for i := len(m.receipts) - 1; i >= 0; i-- {
		if m.receipts[i].Email == email {
			out = append(out, m.receipts[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

var errStorage = errors.New("storage offline")
