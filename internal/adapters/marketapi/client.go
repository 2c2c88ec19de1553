package marketapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/platform/obs"
	"campus-market-service/internal/ports"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Client implements ports.MarketAPI over the remote campus market REST API.
//
// Reads retry on connection errors and 5xx replies. Calls with side effects
// (sign-in links, invite redemption, trades) go through a client without
// retries, so a lost reply never repeats the effect. The client is safe for
// concurrent use.
type Client struct {
	baseURL string
	session *http.Client
	noRetry *http.Client
	logger  *zap.Logger
}

var _ ports.MarketAPI = (*Client)(nil)

// leveledZap adapts zap to retryablehttp's leveled logger. Errors are logged
// as warnings because the client retries them.
type leveledZap struct {
	inner *zap.SugaredLogger
}

func (l leveledZap) Error(msg string, keysAndValues ...any) { l.inner.Warnw(msg, keysAndValues...) }
func (l leveledZap) Warn(msg string, keysAndValues ...any)  { l.inner.Warnw(msg, keysAndValues...) }
func (l leveledZap) Info(msg string, keysAndValues ...any)  { l.inner.Debugw(msg, keysAndValues...) }
func (l leveledZap) Debug(msg string, keysAndValues ...any) { l.inner.Debugw(msg, keysAndValues...) }

type Option func(*retryablehttp.Client)

func WithMaxRetries(maxRetries int) Option {
	return func(c *retryablehttp.Client) {
		c.RetryMax = maxRetries
	}
}

// WithRetryWait bounds the backoff between attempts.
func WithRetryWait(waitMin, waitMax time.Duration) Option {
	return func(c *retryablehttp.Client) {
		c.RetryWaitMin = waitMin
		c.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *retryablehttp.Client) {
		c.HTTPClient.Timeout = timeout
	}
}

func NewClient(baseURL string, logger *zap.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("market api base url is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("subsystem", "marketapi"))

	session := newRetryClient(logger, opts)
	noRetry := newRetryClient(logger, opts)
	noRetry.RetryMax = 0

	return &Client{
		baseURL: baseURL,
		session: session.StandardClient(),
		noRetry: noRetry.StandardClient(),
		logger:  logger,
	}, nil
}

func newRetryClient(logger *zap.Logger, opts []Option) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = cleanhttp.DefaultPooledClient()
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = retryablehttp.LeveledLogger(leveledZap{inner: logger.Sugar()})
	rc.CheckRetry = retryPolicy
	// Hand the final reply back so do can turn it into a *StatusError.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// retryPolicy is retryablehttp's default policy except that 429 is not
// retried; the caller sees it as an upstream failure.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func requireToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: missing bearer token", ports.ErrUnauthorized)
	}
	return nil
}

func (c *Client) RequestLogin(ctx context.Context, email string) (err error) {
	defer obs.Time(ctx, c.logger, "marketapi.RequestLogin")(&err)

	if err := c.call(ctx, c.noRetry, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email}, nil); err != nil {
		return fmt.Errorf("request login: %w", err)
	}
	return nil
}

func (c *Client) Session(ctx context.Context, token string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, c.logger, "marketapi.Session")(&err)

	if err := requireToken(token); err != nil {
		return nil, err
	}

	var out sessionJSON
	if err := c.call(ctx, c.session, http.MethodGet, "/api/session", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return out.toDomain(), nil
}

func (c *Client) ListMarkets(ctx context.Context, token string) (_ []*domain.Market, err error) {
	defer obs.Time(ctx, c.logger, "marketapi.ListMarkets")(&err)

	if err := requireToken(token); err != nil {
		return nil, err
	}

	var out marketsResponse
	if err := c.call(ctx, c.session, http.MethodGet, "/api/markets", token, nil, &out); err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}

	markets := make([]*domain.Market, 0, len(out.Markets))
	for _, m := range out.Markets {
		dm, err := m.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list markets: %w: %w", ports.ErrUpstream, err)
		}
		markets = append(markets, dm)
	}
	return markets, nil
}

func (c *Client) PlaceTrade(ctx context.Context, token string, req domain.TradeRequest) (_ *domain.TradeResult, err error) {
	defer obs.Time(ctx, c.logger, "marketapi.PlaceTrade")(&err)

	if err := requireToken(token); err != nil {
		return nil, err
	}

	in := tradeRequest{MarketID: req.MarketID, Side: string(req.Side), Stake: req.Stake}
	var out tradeJSON
	if err := c.call(ctx, c.noRetry, http.MethodPost, "/api/trades", token, in, &out); err != nil {
		return nil, fmt.Errorf("place trade on %q: %w", req.MarketID, err)
	}

	result, err := out.toDomain()
	if err != nil {
		return nil, fmt.Errorf("place trade on %q: %w: %w", req.MarketID, ports.ErrUpstream, err)
	}
	return result, nil
}

func (c *Client) Leaderboard(ctx context.Context, token string) (_ []*domain.LeaderboardEntry, err error) {
	defer obs.Time(ctx, c.logger, "marketapi.Leaderboard")(&err)

	if err := requireToken(token); err != nil {
		return nil, err
	}

	var out leaderboardResponse
	if err := c.call(ctx, c.session, http.MethodGet, "/api/leaderboard", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	entries := make([]*domain.LeaderboardEntry, 0, len(out.Entries))
	for _, e := range out.Entries {
		entries = append(entries, &domain.LeaderboardEntry{Name: e.Name, Balance: e.Balance})
	}
	return entries, nil
}

func (c *Client) Ledger(ctx context.Context, token string) (_ []*domain.LedgerEntry, err error) {
	defer obs.Time(ctx, c.logger, "marketapi.Ledger")(&err)

	if err := requireToken(token); err != nil {
		return nil, err
	}

	var out ledgerResponse
	if err := c.call(ctx, c.session, http.MethodGet, "/api/ledger", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get ledger: %w", err)
	}

	entries := make([]*domain.LedgerEntry, 0, len(out.Entries))
	for _, e := range out.Entries {
		de, err := e.toDomain()
		if err != nil {
			return nil, fmt.Errorf("get ledger: %w: %w", ports.ErrUpstream, err)
		}
		entries = append(entries, de)
	}
	return entries, nil
}

func (c *Client) RedeemInvite(ctx context.Context, token string, code string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, c.logger, "marketapi.RedeemInvite")(&err)

	if err := requireToken(token); err != nil {
		return nil, err
	}

	var out sessionJSON
	if err := c.call(ctx, c.noRetry, http.MethodPost, "/api/invites/redeem", token, redeemRequest{Code: code}, &out); err != nil {
		return nil, fmt.Errorf("redeem invite: %w", err)
	}
	return out.toDomain(), nil
}
