package dto

import "time"

type MarketResponse struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Status     string     `json:"status"`
	Open       bool       `json:"open"`
	YesPrice   float64    `json:"yes_price"`
	Volume     int64      `json:"volume"`
	ClosesAt   *time.Time `json:"closes_at"`
	Resolution string     `json:"resolution,omitempty"`
}

type ListMarketsResponse struct {
	Markets []MarketResponse `json:"markets"`
}

type LeaderboardEntryResponse struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries"`
}
