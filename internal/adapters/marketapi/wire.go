package marketapi

import (
	"errors"
	"fmt"
	"time"

	"campus-market-service/internal/domain"
)

type loginRequest struct {
	Email string `json:"email"`
}

type redeemRequest struct {
	Code string `json:"code"`
}

type tradeRequest struct {
	MarketID string `json:"market_id"`
	Side     string `json:"side"`
	Stake    int64  `json:"stake"`
}

type sessionJSON struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

func (s sessionJSON) toDomain() *domain.Session {
	return &domain.Session{Email: s.Email, Name: s.Name, Balance: s.Balance}
}

type marketJSON struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Status     string    `json:"status"`
	YesPrice   float64   `json:"yes_price"`
	Volume     int64     `json:"volume"`
	ClosesAt   time.Time `json:"closes_at"`
	Resolution string    `json:"resolution,omitempty"`
}

type marketsResponse struct {
	Markets []marketJSON `json:"markets"`
}

func (m marketJSON) toDomain() (*domain.Market, error) {
	if m.ID == "" {
		return nil, errors.New("market without id")
	}

	status := domain.MarketStatus(m.Status)
	switch status {
	case domain.MarketOpen, domain.MarketClosed, domain.MarketResolved:
	default:
		return nil, fmt.Errorf("market %q: unknown status %q", m.ID, m.Status)
	}

	var resolution domain.Side
	if m.Resolution != "" {
		side, err := domain.ParseSide(m.Resolution)
		if err != nil {
			return nil, fmt.Errorf("market %q: %w", m.ID, err)
		}
		resolution = side
	}

	return &domain.Market{
		ID:         m.ID,
		Question:   m.Question,
		Status:     status,
		YesPrice:   m.YesPrice,
		Volume:     m.Volume,
		ClosesAt:   m.ClosesAt,
		Resolution: resolution,
	}, nil
}

type tradeJSON struct {
	TradeID  string    `json:"trade_id"`
	MarketID string    `json:"market_id"`
	Side     string    `json:"side"`
	Stake    int64     `json:"stake"`
	Balance  int64     `json:"balance"`
	PlacedAt time.Time `json:"placed_at"`
}

func (t tradeJSON) toDomain() (*domain.TradeResult, error) {
	side, err := domain.ParseSide(t.Side)
	if err != nil {
		return nil, fmt.Errorf("trade %q: %w", t.TradeID, err)
	}
	return &domain.TradeResult{
		TradeID:  t.TradeID,
		MarketID: t.MarketID,
		Side:     side,
		Stake:    t.Stake,
		Balance:  t.Balance,
		PlacedAt: t.PlacedAt,
	}, nil
}

type leaderboardJSON struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type leaderboardResponse struct {
	Entries []leaderboardJSON `json:"entries"`
}

type ledgerJSON struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	MarketID  string    `json:"market_id,omitempty"`
	Side      string    `json:"side,omitempty"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type ledgerResponse struct {
	Entries []ledgerJSON `json:"entries"`
}

func (e ledgerJSON) toDomain() (*domain.LedgerEntry, error) {
	kind := domain.LedgerKind(e.Kind)
	switch kind {
	case domain.LedgerGrant, domain.LedgerTrade, domain.LedgerPayout, domain.LedgerRefund:
	default:
		return nil, fmt.Errorf("ledger entry %q: unknown kind %q", e.ID, e.Kind)
	}

	var side domain.Side
	if e.Side != "" {
		s, err := domain.ParseSide(e.Side)
		if err != nil {
			return nil, fmt.Errorf("ledger entry %q: %w", e.ID, err)
		}
		side = s
	}

	return &domain.LedgerEntry{
		ID:        e.ID,
		Kind:      kind,
		MarketID:  e.MarketID,
		Side:      side,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}, nil
}
