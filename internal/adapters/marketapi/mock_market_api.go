package marketapi

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/ports"
)

// MockMarketAPI is an in-memory ports.MarketAPI for tests and local runs.
// Trades debit the session balance and append ledger entries the way the
// remote API does.
type MockMarketAPI struct {
	mu sync.Mutex

	now      func() time.Time
	sessions map[string]*domain.Session
	markets  map[string]*domain.Market
	ledgers  map[string][]*domain.LedgerEntry
	invites  map[string]int64
	nextID   int

	// Err, when set, is returned by every call.
	Err error
	// Calls counts invocations per method name.
	Calls map[string]int
	// Logins records emails passed to RequestLogin.
	Logins []string
}

var _ ports.MarketAPI = (*MockMarketAPI)(nil)

func NewMockMarketAPI(now func() time.Time) *MockMarketAPI {
	if now == nil {
		now = time.Now
	}
	return &MockMarketAPI{
		now:      now,
		sessions: make(map[string]*domain.Session),
		markets:  make(map[string]*domain.Market),
		ledgers:  make(map[string][]*domain.LedgerEntry),
		invites:  make(map[string]int64),
		Calls:    make(map[string]int),
	}
}

// AddSession registers token for s and records the opening grant.
func (m *MockMarketAPI) AddSession(token string, s domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[token] = &s
	if s.Balance > 0 {
		m.appendLedger(token, &domain.LedgerEntry{Kind: domain.LedgerGrant, Amount: s.Balance})
	}
}

func (m *MockMarketAPI) AddMarket(market domain.Market) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.markets[market.ID] = &market
}

// AddInvite makes code redeemable once for bonus tokens.
func (m *MockMarketAPI) AddInvite(code string, bonus int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.invites[code] = bonus
}

func (m *MockMarketAPI) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Calls[method]
}

func (m *MockMarketAPI) begin(method string) error {
	m.Calls[method]++
	return m.Err
}

func (m *MockMarketAPI) lookup(token string) (*domain.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, fmt.Errorf("mock session: %w", ports.ErrUnauthorized)
	}
	return s, nil
}

func (m *MockMarketAPI) appendLedger(token string, e *domain.LedgerEntry) {
	m.nextID++
	e.ID = fmt.Sprintf("l-%d", m.nextID)
	e.CreatedAt = m.now()
	m.ledgers[token] = append(m.ledgers[token], e)
}

func (m *MockMarketAPI) RequestLogin(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("RequestLogin"); err != nil {
		return err
	}
	m.Logins = append(m.Logins, email)
	return nil
}

func (m *MockMarketAPI) Session(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("Session"); err != nil {
		return nil, err
	}
	s, err := m.lookup(token)
	if err != nil {
		return nil, err
	}
	cp := *s
	return &cp, nil
}

func (m *MockMarketAPI) ListMarkets(ctx context.Context, token string) ([]*domain.Market, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("ListMarkets"); err != nil {
		return nil, err
	}
	if _, err := m.lookup(token); err != nil {
		return nil, err
	}

	out := make([]*domain.Market, 0, len(m.markets))
	for _, mk := range m.markets {
		cp := *mk
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockMarketAPI) PlaceTrade(ctx context.Context, token string, req domain.TradeRequest) (*domain.TradeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("PlaceTrade"); err != nil {
		return nil, err
	}
	s, err := m.lookup(token)
	if err != nil {
		return nil, err
	}

	mk, ok := m.markets[req.MarketID]
	if !ok {
		return nil, fmt.Errorf("mock market %q: %w", req.MarketID, ports.ErrNotFound)
	}
	if !mk.IsOpen(m.now()) {
		return nil, fmt.Errorf("mock market %q closed: %w", req.MarketID, ports.ErrRejected)
	}
	if req.Stake <= 0 || req.Stake > s.Balance {
		return nil, fmt.Errorf("mock stake %d: %w", req.Stake, ports.ErrRejected)
	}

	s.Balance -= req.Stake
	mk.Volume += req.Stake
	m.appendLedger(token, &domain.LedgerEntry{
		Kind:     domain.LedgerTrade,
		MarketID: req.MarketID,
		Side:     req.Side,
		Amount:   -req.Stake,
	})

	m.nextID++
	return &domain.TradeResult{
		TradeID:  fmt.Sprintf("t-%d", m.nextID),
		MarketID: req.MarketID,
		Side:     req.Side,
		Stake:    req.Stake,
		Balance:  s.Balance,
		PlacedAt: m.now(),
	}, nil
}

func (m *MockMarketAPI) Leaderboard(ctx context.Context, token string) ([]*domain.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("Leaderboard"); err != nil {
		return nil, err
	}
	if _, err := m.lookup(token); err != nil {
		return nil, err
	}

	out := make([]*domain.LeaderboardEntry, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, &domain.LeaderboardEntry{Name: s.Name, Balance: s.Balance})
	}
	return out, nil
}

func (m *MockMarketAPI) Ledger(ctx context.Context, token string) ([]*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("Ledger"); err != nil {
		return nil, err
	}
	if _, err := m.lookup(token); err != nil {
		return nil, err
	}

	out := make([]*domain.LedgerEntry, 0, len(m.ledgers[token]))
	for _, e := range m.ledgers[token] {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockMarketAPI) RedeemInvite(ctx context.Context, token string, code string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("RedeemInvite"); err != nil {
		return nil, err
	}
	s, err := m.lookup(token)
	if err != nil {
		return nil, err
	}

	bonus, ok := m.invites[code]
	if !ok {
		return nil, fmt.Errorf("mock invite %q: %w", code, ports.ErrNotFound)
	}
	delete(m.invites, code)

	s.Balance += bonus
	m.appendLedger(token, &domain.LedgerEntry{Kind: domain.LedgerGrant, Amount: bonus})

	cp := *s
	return &cp, nil
}
