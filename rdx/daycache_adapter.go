package rdx

import "voyago/models"

// DayItemCache adapts the Redis day-items helpers to the cache contract the
// itinerary service expects.
type DayItemCache struct{}

func (DayItemCache) Get(dayID string) ([]models.Item, bool) { return CachedDayItems(dayID) }
func (DayItemCache) Set(dayID string, items []models.Item)  { CacheDayItems(dayID, items) }
func (DayItemCache) Invalidate(dayID string)                { InvalidateDay(dayID) }
