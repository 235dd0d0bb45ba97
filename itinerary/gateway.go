package itinerary

import (
	"context"

	"voyago/models"
	"voyago/ordering"
)

// Gateway is the narrow persistence contract the itinerary service runs
// against. db.Store satisfies it in production; tests use an in-memory fake.
//
// BatchUpsertOrders is best-effort, not atomic: on partial failure the
// service discards its optimistic state and re-reads server truth.
type Gateway interface {
	ListItems(ctx context.Context, dayID string) ([]models.Item, error)
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	ReplaceItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, itemID string) error
	DeleteDerivedOf(ctx context.Context, originID string) error
	BatchUpsertOrders(ctx context.Context, orders []ordering.ItemOrder) error

	ListDays(ctx context.Context, tripID string) ([]models.Day, error)
	GetDay(ctx context.Context, dayID string) (*models.Day, error)
	BumpDayRevision(ctx context.Context, dayID string, expected int64) (int64, error)
}

// DayCache fronts day item lists; writes invalidate, reads go through.
// A nil cache disables caching.
type DayCache interface {
	Get(dayID string) ([]models.Item, bool)
	Set(dayID string, items []models.Item)
	Invalidate(dayID string)
}
