package dto

import "time"

type TradeRequest struct {
	MarketID string `json:"market_id"`
	Side     string `json:"side"`
	Stake    int64  `json:"stake"`
}

type TradeResponse struct {
	TradeID  string    `json:"trade_id"`
	MarketID string    `json:"market_id"`
	Side     string    `json:"side"`
	Stake    int64     `json:"stake"`
	Balance  int64     `json:"balance"`
	PlacedAt time.Time `json:"placed_at"`
}

type ReceiptResponse struct {
	ID            string    `json:"id"`
	MarketID      string    `json:"market_id"`
	Side          string    `json:"side"`
	Stake         int64     `json:"stake"`
	RemoteTradeID string    `json:"remote_trade_id"`
	PlacedAt      time.Time `json:"placed_at"`
}

type ListReceiptsResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
}
