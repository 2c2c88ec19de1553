package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/ports"
)

const maxReceiptsLimit = 200

const insertReceiptQuery = `
	INSERT INTO trade_receipts (
		id,
		email,
		market_id,
		side,
		stake,
		remote_trade_id,
		placed_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Postgres-backed implementation of the ReceiptRepository port.
type PostgresReceiptRepository struct{ DB *sql.DB }

var _ ports.ReceiptRepository = (*PostgresReceiptRepository)(nil)

func NewPostgresReceiptRepository(db *sql.DB) *PostgresReceiptRepository {
	return &PostgresReceiptRepository{DB: db}
}

func receiptArgs(r *domain.TradeReceipt) []any {
	return []any{r.ID, r.Email, r.MarketID, string(r.Side), r.Stake, r.RemoteTradeID, r.PlacedAt}
}

func (p *PostgresReceiptRepository) SaveReceipt(ctx context.Context, r *domain.TradeReceipt) error {
	if p.DB == nil {
		return errors.New("postgres receipt repository: DB is nil")
	}
	if r == nil {
		return errors.New("save receipt: receipt is nil")
	}

	if _, err := p.DB.ExecContext(ctx, insertReceiptQuery+";", receiptArgs(r)...); err != nil {
		return fmt.Errorf("save receipt id=%s: %w", r.ID, err)
	}
	return nil
}

// ListReceipts returns at most limit receipts for email, newest first.
// A non-positive limit means the maximum.
func (p *PostgresReceiptRepository) ListReceipts(ctx context.Context, email string, limit int) ([]*domain.TradeReceipt, error) {
	if p.DB == nil {
		return nil, errors.New("postgres receipt repository: DB is nil")
	}
	if limit <= 0 || limit > maxReceiptsLimit {
		limit = maxReceiptsLimit
	}

	query := `
	SELECT
		id,
		email,
		market_id,
		side,
		stake,
		remote_trade_id,
		placed_at
	FROM trade_receipts
	WHERE email = $1
	ORDER BY placed_at DESC, id
	LIMIT $2;
	`
	rows, err := p.DB.QueryContext(ctx, query, email, limit)
	if err != nil {
		return nil, fmt.Errorf("list receipts: query trade_receipts table: %w", err)
	}
	defer rows.Close()

	receipts := make([]*domain.TradeReceipt, 0, limit)
	for rows.Next() {
		var r domain.TradeReceipt
		var side string
		if err := rows.Scan(&r.ID, &r.Email, &r.MarketID, &side, &r.Stake, &r.RemoteTradeID, &r.PlacedAt); err != nil {
			return nil, fmt.Errorf("list receipts: scan row: %w", err)
		}
		r.Side = domain.Side(side)
		receipts = append(receipts, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list receipts: row iteration: %w", err)
	}

	return receipts, nil
}
