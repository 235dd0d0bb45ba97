package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voyago/models"
	"voyago/ordering"
)

// ListItems returns a day's items ordered by (sort_order, start_time); the
// accommodation-last tie-break is applied by the caller via ordering.Sort.
func (s *Store) ListItems(ctx context.Context, dayID string) ([]models.Item, error) {
	cursor, err := s.Items.Find(ctx, bson.M{"dayid": dayID},
		options.Find().SetSort(bson.D{
			{Key: "sort_order", Value: 1},
			{Key: "start_time", Value: 1},
		}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func (s *Store) ListTripItems(ctx context.Context, tripID string) ([]models.Item, error) {
	cursor, err := s.Items.Find(ctx, bson.M{"tripid": tripID},
		options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	var item models.Item
	if err := s.Items.FindOne(ctx, bson.M{"itemid": itemID}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	_, err := s.Items.InsertOne(ctx, item)
	return err
}

func (s *Store) ReplaceItem(ctx context.Context, item *models.Item) error {
	_, err := s.Items.ReplaceOne(ctx, bson.M{"itemid": item.ItemID}, item)
	return err
}

func (s *Store) DeleteItem(ctx context.Context, itemID string) error {
	_, err := s.Items.DeleteOne(ctx, bson.M{"itemid": itemID})
	return err
}

// DeleteDerivedOf removes every companion synthesized from the given item.
func (s *Store) DeleteDerivedOf(ctx context.Context, originID string) error {
	_, err := s.Items.DeleteMany(ctx, bson.M{"derived_from_item_id": originID})
	return err
}

// BatchUpsertOrders writes the new sort_order values of a reorder in one
// bulk call. The bulk write is best-effort, not transactional; callers
// reconcile against server truth on any error (see itinerary.Service).
func (s *Store) BatchUpsertOrders(ctx context.Context, orders []ordering.ItemOrder) error {
	writes := make([]mongo.WriteModel, 0, len(orders))
	for _, o := range orders {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"itemid": o.ItemID}).
			SetUpdate(bson.M{"$set": bson.M{"sort_order": o.SortOrder}}))
	}
	if len(writes) == 0 {
		return nil
	}
	_, err := s.Items.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}
