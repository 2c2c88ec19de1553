package domain

import (
	"fmt"
	"strings"
	"time"
)

// Side of a binary market a trader stakes on.
type Side string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"
)

// ParseSide accepts "yes"/"no" in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideYes:
		return SideYes, nil
	case SideNo:
		return SideNo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

type MarketStatus string

const (
	MarketOpen     MarketStatus = "open"
	MarketClosed   MarketStatus = "closed"
	MarketResolved MarketStatus = "resolved"
)

// Represents a binary yes/no market as served by the remote market API.
// Prices are computed remotely; YesPrice is the implied probability of "yes".
type Market struct {
	ID         string
	Question   string
	Status     MarketStatus
	YesPrice   float64
	Volume     int64
	ClosesAt   time.Time
	Resolution Side
}

// IsOpen reports whether the market accepts trades at now.
func (m *Market) IsOpen(now time.Time) bool {
	if m.Status != MarketOpen {
		return false
	}
	return m.ClosesAt.IsZero() || now.Before(m.ClosesAt)
}

// Signed-in user as reported by the remote session endpoint.
// Balance is in whole play tokens.
type Session struct {
	Email   string
	Name    string
	Balance int64
}

// A request to stake tokens on one side of a market.
type TradeRequest struct {
	MarketID string
	Side     Side
	Stake    int64
}

// Outcome of a trade accepted by the remote API.
type TradeResult struct {
	TradeID  string
	MarketID string
	Side     Side
	Stake    int64
	Balance  int64
	PlacedAt time.Time
}

type LedgerKind string

const (
	LedgerGrant  LedgerKind = "grant"
	LedgerTrade  LedgerKind = "trade"
	LedgerPayout LedgerKind = "payout"
	LedgerRefund LedgerKind = "refund"
)

// One movement of play tokens on a user's account. Trade entries debit the
// account, so their Amount is usually negative.
type LedgerEntry struct {
	ID        string
	Kind      LedgerKind
	MarketID  string
	Side      Side
	Amount    int64
	CreatedAt time.Time
}

type LeaderboardEntry struct {
	Rank    int
	Name    string
	Balance int64
}

// Local record of a trade placed through this service.
type TradeReceipt struct {
	ID            string
	Email         string
	MarketID      string
	Side          Side
	Stake         int64
	RemoteTradeID string
	PlacedAt      time.Time
}
