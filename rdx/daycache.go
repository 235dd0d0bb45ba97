package rdx

import (
	"encoding/json"
	"log"
	"time"

	"voyago/models"
)

// Day-item lists are the single shared read path for itinerary rendering, so
// they get a short-TTL cache keyed by day id with explicit invalidation on
// every write.

const dayItemsTTL = 5 * time.Minute

func dayItemsKey(dayID string) string { return "day:items:" + dayID }

func CacheDayItems(dayID string, items []models.Item) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := RdxSetWithExpiry(dayItemsKey(dayID), string(data), dayItemsTTL); err != nil {
		log.Printf("day cache set failed for %s: %v", dayID, err)
	}
}

func CachedDayItems(dayID string) ([]models.Item, bool) {
	raw, err := RdxGet(dayItemsKey(dayID))
	if err != nil || raw == "" {
		return nil, false
	}
	var items []models.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	return items, true
}

func InvalidateDay(dayID string) {
	if _, err := RdxDel(dayItemsKey(dayID)); err != nil {
		log.Printf("day cache invalidate failed for %s: %v", dayID, err)
	}
}
