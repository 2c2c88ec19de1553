package ports

import (
	"campus-market-service/internal/domain"
	"context"
	"errors"
)

// Errors the remote market API can surface, independent of transport.
var (
	ErrUnauthorized = errors.New("market api: unauthorized")
	ErrNotFound     = errors.New("market api: not found")
	ErrRejected     = errors.New("market api: request rejected")
	ErrUpstream     = errors.New("market api: upstream failure")
)

// Contract for the remote campus market REST API.
// Every call except RequestLogin is made on behalf of the bearer token's user.
type MarketAPI interface {
	// Send a sign-in link to an institutional email address.
	RequestLogin(ctx context.Context, email string) error
	Session(ctx context.Context, token string) (*domain.Session, error)
	ListMarkets(ctx context.Context, token string) ([]*domain.Market, error)
	PlaceTrade(ctx context.Context, token string, req domain.TradeRequest) (*domain.TradeResult, error)
	Leaderboard(ctx context.Context, token string) ([]*domain.LeaderboardEntry, error)
	Ledger(ctx context.Context, token string) ([]*domain.LedgerEntry, error)
	// Redeem an invite code and return the refreshed session.
	RedeemInvite(ctx context.Context, token string, code string) (*domain.Session, error)
}
