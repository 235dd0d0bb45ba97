// Package ordering owns the sort_order space for items within a day.
//
// Non-accommodation items are spaced Stride apart so that inserts between
// neighbours rarely force a renumber; accommodation items are pinned to a
// large sentinel so they anchor the bottom of the day.
package ordering

import (
	"fmt"
	"sort"

	"voyago/models"
)

const (
	// Stride spaces appended items so later inserts land on midpoints.
	Stride = 1024
	// AccommodationSentinel pins accommodation items after everything else.
	AccommodationSentinel = 9000
)

// Append returns a sort_order greater than all existing siblings.
func Append(existing int, cat models.Category) float64 {
	if cat == models.CategoryAccommodation {
		return AccommodationSentinel
	}
	return float64(existing+1) * Stride
}

// AppendCompact is the fallback for days whose legacy data was numbered
// contiguously without stride spacing.
func AppendCompact(existing int, cat models.Category) float64 {
	if cat == models.CategoryAccommodation {
		return AccommodationSentinel
	}
	return float64(existing + 1)
}

// InsertBetween returns a sort_order strictly between prev and next. When
// next is unknown (insert at the end, before the accommodation block) pass
// NoFollowing. ok is false when the gap is degenerate: the midpoint collided
// with a bound and the day must be renumbered before this insert can succeed.
func InsertBetween(prev, next float64) (v float64, ok bool) {
	if next == NoFollowing {
		return prev + Stride, true
	}
	if next <= prev {
		return 0, false
	}
	mid := prev + (next-prev)/2
	if mid == prev || mid == next {
		return 0, false
	}
	return mid, true
}

// NoFollowing marks an absent following item for InsertBetween.
const NoFollowing float64 = -1

// ItemOrder is one row of a renumbering result.
type ItemOrder struct {
	ItemID    string
	SortOrder float64
}

// Renumber closes all gaps: non-accommodation items get contiguous 1..n in
// their current display order, accommodation items keep the sentinel. The
// input slice is not modified.
func Renumber(items []models.Item) []ItemOrder {
	out := make([]ItemOrder, 0, len(items))
	n := 0
	for _, it := range items {
		if it.Category == models.CategoryAccommodation {
			out = append(out, ItemOrder{ItemID: it.ItemID, SortOrder: AccommodationSentinel})
			continue
		}
		n++
		out = append(out, ItemOrder{ItemID: it.ItemID, SortOrder: float64(n)})
	}
	return out
}

// Reorder moves movedID to target within the day's non-accommodation subset
// (items must already be in display order) and returns the full renumbering.
// target indexes the non-accommodation subset, 0-based.
func Reorder(items []models.Item, movedID string, target int) ([]ItemOrder, error) {
	var movable []models.Item
	var pinned []models.Item
	from := -1
	for _, it := range items {
		if it.Category == models.CategoryAccommodation {
			pinned = append(pinned, it)
			continue
		}
		if it.ItemID == movedID {
			from = len(movable)
		}
		movable = append(movable, it)
	}
	if from == -1 {
		return nil, fmt.Errorf("item %s not found in day", movedID)
	}
	if target < 0 || target >= len(movable) {
		return nil, fmt.Errorf("target index %d out of range [0,%d)", target, len(movable))
	}

	moved := movable[from]
	movable = append(movable[:from], movable[from+1:]...)
	movable = append(movable[:target], append([]models.Item{moved}, movable[target:]...)...)

	return Renumber(append(movable, pinned...)), nil
}

// Sort orders items for display: sort_order ascending, accommodation after
// non-accommodation on equal sort_order, then start_time ascending.
func Sort(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		aAcc := a.Category == models.CategoryAccommodation
		bAcc := b.Category == models.CategoryAccommodation
		if aAcc != bAcc {
			return !aAcc
		}
		return a.StartTime < b.StartTime
	})
}
