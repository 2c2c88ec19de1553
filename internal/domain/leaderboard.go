package domain

import (
	"cmp"
	"slices"
	"strings"
)

// RankLeaderboard orders entries by balance, highest first, breaking ties by
// name, and assigns ranks 1..n. The input slice is sorted in place.
func RankLeaderboard(entries []*LeaderboardEntry) []*LeaderboardEntry {
	entries = slices.DeleteFunc(entries, func(e *LeaderboardEntry) bool { return e == nil })

	slices.SortStableFunc(entries, func(a, b *LeaderboardEntry) int {
		if c := cmp.Compare(b.Balance, a.Balance); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	for i, e := range entries {
		e.Rank = i + 1
	}

	return entries
}
