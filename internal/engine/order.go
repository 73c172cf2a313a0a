package engine

import (
	"slices"
)

// RecentFirst returns a copy of items ordered newest first by Timestamp.
// Items with equal timestamps keep their relative order.
func RecentFirst[T Timestamped](items []T) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return b.Timestamp().Compare(a.Timestamp())
	})
	return sorted
}
