package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"campus-market-service/internal/domain"

	"github.com/google/uuid"
)

// Initialize the Postgres schema for trade receipts.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createReceiptsQuery := `
	CREATE TABLE IF NOT EXISTS trade_receipts (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL,
		market_id TEXT NOT NULL,
		side TEXT NOT NULL CHECK (side IN ('yes', 'no')),
		stake BIGINT NOT NULL CHECK (stake > 0),
		remote_trade_id TEXT NOT NULL DEFAULT '',
		placed_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trade_receipts_email_placed_at
	ON trade_receipts(email, placed_at DESC);
	`

	statements := []string{
		createReceiptsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ReceiptSeed struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	MarketID      string    `json:"market_id"`
	Side          string    `json:"side"`
	Stake         int64     `json:"stake"`
	RemoteTradeID string    `json:"remote_trade_id"`
	PlacedAt      time.Time `json:"placed_at"`
}

// Populate trade_receipts from a JSON file. Existing ids are left untouched.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed receipts: DB is nil")
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed receipts: read %q: %w", jsonPath, err)
	}

	receipts, err := parseSeeds(raw)
	if err != nil {
		return fmt.Errorf("seed receipts: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed receipts: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertReceiptQuery+" ON CONFLICT (id) DO NOTHING;")
	if err != nil {
		return fmt.Errorf("seed receipts: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range receipts {
		if _, err := stmt.ExecContext(ctx, receiptArgs(r)...); err != nil {
			return fmt.Errorf("seed receipts: insert id=%s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed receipts: commit tx: %w", err)
	}

	return nil
}

func parseSeeds(raw []byte) ([]*domain.TradeReceipt, error) {
	var data []ReceiptSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	out := make([]*domain.TradeReceipt, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = uuid.NewString()
		} else if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("item at index %d: invalid id %q: %w", i+1, id, err)
		}

		email, err := domain.NormalizeEmail(item.Email)
		if err != nil {
			return nil, fmt.Errorf("item at index %d: %w", i+1, err)
		}

		marketID := strings.TrimSpace(item.MarketID)
		if marketID == "" {
			return nil, fmt.Errorf("item at index %d: market_id cannot be empty", i+1)
		}

		side, err := domain.ParseSide(item.Side)
		if err != nil {
			return nil, fmt.Errorf("item at index %d: %w", i+1, err)
		}

		if item.Stake <= 0 {
			return nil, fmt.Errorf("item at index %d: %w: %d", i+1, domain.ErrInvalidStake, item.Stake)
		}

		if item.PlacedAt.IsZero() {
			return nil, fmt.Errorf("item at index %d: placed_at is required", i+1)
		}

		out = append(out, &domain.TradeReceipt{
			ID:            id,
			Email:         email,
			MarketID:      marketID,
			Side:          side,
			Stake:         item.Stake,
			RemoteTradeID: strings.TrimSpace(item.RemoteTradeID),
			PlacedAt:      item.PlacedAt.UTC(),
		})
	}

	return out, nil
}
