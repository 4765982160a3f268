package leaderboard

import (
	"cmp"
	"slices"
)

// Rank orders entries in place: points descending, then full name ascending
// (byte-wise), then id so the order is total.
func Rank(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Points != b.Points {
			return cmp.Compare(b.Points, a.Points)
		}
		if c := cmp.Compare(a.Player.FullName, b.Player.FullName); c != 0 {
			return c
		}
		return cmp.Compare(a.Player.ID, b.Player.ID)
	})
}
