package dto

import "time"

type PositionResponse struct {
	MarketID string `json:"market_id"`
	Question string `json:"question"`
	Status   string `json:"status"`
	Open     bool   `json:"open"`
	Side     string `json:"side"`
	Staked   int64  `json:"staked"`
	Trades   int    `json:"trades"`
}

type PortfolioResponse struct {
	Balance       int64              `json:"balance"`
	TotalStaked   int64              `json:"total_staked"`
	OpenPositions int                `json:"open_positions"`
	Positions     []PositionResponse `json:"positions"`
}

type LedgerEntryResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	MarketID  string    `json:"market_id,omitempty"`
	Side      string    `json:"side,omitempty"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type LedgerResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}
