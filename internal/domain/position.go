package domain

import (
	"slices"
	"strings"
)

// Aggregated exposure of one user on one side of one market.
type Position struct {
	MarketID string
	Side     Side
	Staked   int64
	Trades   int
}

// AggregatePositions groups trade ledger entries by market and side and sums
// their stakes. Non-trade entries are ignored. The result is ordered by
// market id, then side, so repeated calls render identically.
func AggregatePositions(entries []*LedgerEntry) []*Position {
	byKey := make(map[string]*Position)
	for _, e := range entries {
		if e == nil || e.Kind != LedgerTrade || e.MarketID == "" {
			continue
		}

		key := e.MarketID + "|" + string(e.Side)
		p, ok := byKey[key]
		if !ok {
			p = &Position{MarketID: e.MarketID, Side: e.Side}
			byKey[key] = p
		}

		stake := e.Amount
		if stake < 0 {
			stake = -stake
		}
		p.Staked += stake
		p.Trades++
	}

	out := make([]*Position, 0, len(byKey))
	for _, p := range byKey {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b *Position) int {
		if c := strings.Compare(a.MarketID, b.MarketID); c != 0 {
			return c
		}
		return strings.Compare(string(a.Side), string(b.Side))
	})

	return out
}
