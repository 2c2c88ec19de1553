package ports

import (
	"campus-market-service/internal/domain"
	"context"
)

// Port: local storage for trades placed through this service.
type ReceiptRepository interface {
	SaveReceipt(ctx context.Context, r *domain.TradeReceipt) error
	// Most recent receipts for email, newest first.
	ListReceipts(ctx context.Context, email string, limit int) ([]*domain.TradeReceipt, error)
}
