package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/platform/obs"
	"campus-market-service/internal/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PlaceTradeRequest struct {
	MarketID string
	Side     string
	Stake    int64
}

// TradeService validates trades against the user's balance and the market
// state before placing them remotely, and keeps a local receipt of each one.
type TradeService struct {
	api      ports.MarketAPI
	receipts ports.ReceiptRepository
	clock    Clock
	logger   *zap.Logger
}

func NewTradeService(api ports.MarketAPI, receipts ports.ReceiptRepository, clock Clock, logger *zap.Logger) *TradeService {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TradeService{api: api, receipts: receipts, clock: clock, logger: logger}
}

func (s *TradeService) Place(ctx context.Context, token string, req PlaceTradeRequest) (_ *domain.TradeResult, err error) {
	defer obs.Time(ctx, s.logger, "trade.Place")(&err)

	side, err := domain.ParseSide(req.Side)
	if err != nil {
		return nil, fmt.Errorf("place trade: %w", err)
	}
	if req.Stake <= 0 {
		return nil, fmt.Errorf("place trade: %w: %d", domain.ErrInvalidStake, req.Stake)
	}
	marketID := strings.TrimSpace(req.MarketID)
	if marketID == "" {
		return nil, fmt.Errorf("place trade: %w: empty market id", domain.ErrMarketNotFound)
	}

	var (
		session *domain.Session
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
		markets, err = s.api.ListMarkets(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("place trade: %w", err)
	}

	if req.Stake > session.Balance {
		return nil, fmt.Errorf("place trade: %w: stake %d, balance %d", domain.ErrInsufficientBalance, req.Stake, session.Balance)
	}

	market, ok := findMarket(markets, marketID)
	if !ok {
		return nil, fmt.Errorf("place trade: %w: %q", domain.ErrMarketNotFound, marketID)
	}
	if !market.IsOpen(s.clock.Now()) {
		return nil, fmt.Errorf("place trade: %w: %q", domain.ErrMarketClosed, marketID)
	}

	result, err := s.api.PlaceTrade(ctx, token, domain.TradeRequest{
		MarketID: marketID,
		Side:     side,
		Stake:    req.Stake,
	})
	if err != nil {
		return nil, fmt.Errorf("place trade: %w", err)
	}

	s.saveReceipt(ctx, session.Email, result)

	return result, nil
}

// The trade already happened remotely, so a failed save is only logged.
func (s *TradeService) saveReceipt(ctx context.Context, email string, result *domain.TradeResult) {
	if s.receipts == nil {
		return
	}

	placedAt := result.PlacedAt
	if placedAt.IsZero() {
		placedAt = s.clock.Now()
	}

	receipt := &domain.TradeReceipt{
		ID:            uuid.NewString(),
		Email:         email,
		MarketID:      result.MarketID,
		Side:          result.Side,
		Stake:         result.Stake,
		RemoteTradeID: result.TradeID,
		PlacedAt:      placedAt.UTC(),
	}

	if err := s.receipts.SaveReceipt(ctx, receipt); err != nil {
		s.logger.Error("trade receipt save failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("remote_trade_id", result.TradeID),
			zap.Error(err),
		)
	}
}

// Receipts lists the locally recorded trades of the session user.
func (s *TradeService) Receipts(ctx context.Context, token string, limit int) ([]*domain.TradeReceipt, error) {
	if s.receipts == nil {
		return nil, errors.New("list receipts: receipt store not configured")
	}

	session, err := s.api.Session(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}

	receipts, err := s.receipts.ListReceipts(ctx, session.Email, limit)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return receipts, nil
}
