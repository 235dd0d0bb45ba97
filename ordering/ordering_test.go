package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/models"
)

func TestAppendStrictlyIncreasing(t *testing.T) {
	prev := float64(0)
	for n := 0; n < 50; n++ {
		v := Append(n, models.CategoryActivity)
		assert.Greater(t, v, prev, "append #%d", n)
		prev = v
	}
}

func TestAppendAccommodationSentinel(t *testing.T) {
	for _, count := range []int{0, 1, 7, 100} {
		assert.Equal(t, float64(AccommodationSentinel), Append(count, models.CategoryAccommodation))
	}
}

func TestInsertBetweenMidpoint(t *testing.T) {
	v, ok := InsertBetween(1024, 2048)
	require.True(t, ok)
	assert.Greater(t, v, float64(1024))
	assert.Less(t, v, float64(2048))
}

func TestInsertBetweenAtEnd(t *testing.T) {
	v, ok := InsertBetween(2048, NoFollowing)
	require.True(t, ok)
	assert.Equal(t, float64(2048+Stride), v)
}

func TestInsertBetweenDegenerateGap(t *testing.T) {
	// Halving the gap between two adjacent integers must eventually hit
	// float64 precision and demand a renumber instead of returning a bound.
	prev, next := float64(1024), float64(1025)
	for i := 0; i < 200; i++ {
		v, ok := InsertBetween(prev, next)
		if !ok {
			return // renumber requested, as required
		}
		require.Greater(t, v, prev)
		require.Less(t, v, next)
		next = v
	}
	t.Fatal("expected a degenerate gap within 200 inserts")
}

func TestInsertBetweenInvertedBounds(t *testing.T) {
	_, ok := InsertBetween(2048, 1024)
	assert.False(t, ok)
}

func dayItems() []models.Item {
	return []models.Item{
		{ItemID: "a", Category: models.CategoryActivity, SortOrder: 1024},
		{ItemID: "b", Category: models.CategoryFood, SortOrder: 2048},
		{ItemID: "c", Category: models.CategoryActivity, SortOrder: 3072},
		{ItemID: "d", Category: models.CategoryTransport, SortOrder: 4096},
		{ItemID: "e", Category: models.CategoryNote, SortOrder: 5120},
		{ItemID: "hotel", Category: models.CategoryAccommodation, SortOrder: AccommodationSentinel},
	}
}

func TestReorderRenumbersContiguously(t *testing.T) {
	orders, err := Reorder(dayItems(), "d", 0)
	require.NoError(t, err)

	got := map[string]float64{}
	for _, o := range orders {
		got[o.ItemID] = o.SortOrder
	}
	assert.Equal(t, float64(1), got["d"])
	assert.Equal(t, float64(2), got["a"])
	assert.Equal(t, float64(3), got["b"])
	assert.Equal(t, float64(4), got["c"])
	assert.Equal(t, float64(5), got["e"])
	assert.Equal(t, float64(AccommodationSentinel), got["hotel"])
}

func TestReorderUnknownItem(t *testing.T) {
	_, err := Reorder(dayItems(), "nope", 0)
	assert.Error(t, err)
}

func TestReorderTargetOutOfRange(t *testing.T) {
	_, err := Reorder(dayItems(), "a", 5) // 5 movable items, max index 4
	assert.Error(t, err)
}

func TestRenumberKeepsSentinel(t *testing.T) {
	orders := Renumber(dayItems())
	for _, o := range orders {
		if o.ItemID == "hotel" {
			assert.Equal(t, float64(AccommodationSentinel), o.SortOrder)
		} else {
			assert.Less(t, o.SortOrder, float64(10))
		}
	}
}

func TestSortAccommodationSinksOnTies(t *testing.T) {
	items := []models.Item{
		{ItemID: "hotel", Category: models.CategoryAccommodation, SortOrder: 5},
		{ItemID: "x", Category: models.CategoryActivity, SortOrder: 5, StartTime: "10:00"},
		{ItemID: "y", Category: models.CategoryActivity, SortOrder: 5, StartTime: "09:00"},
		{ItemID: "first", Category: models.CategoryTransport, SortOrder: 0,
			Transport: &models.TransportDetails{SubType: models.SubTypePublic}},
	}
	Sort(items)

	assert.Equal(t, "first", items[0].ItemID)
	assert.Equal(t, "y", items[1].ItemID)
	assert.Equal(t, "x", items[2].ItemID)
	assert.Equal(t, "hotel", items[3].ItemID)
}
