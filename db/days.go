package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voyago/models"
)

func (s *Store) CreateDays(ctx context.Context, days []models.Day) error {
	docs := make([]any, len(days))
	for i := range days {
		docs[i] = days[i]
	}
	_, err := s.Days.InsertMany(ctx, docs)
	return err
}

func (s *Store) ListDays(ctx context.Context, tripID string) ([]models.Day, error) {
	cursor, err := s.Days.Find(ctx, bson.M{"tripid": tripID},
		options.Find().SetSort(bson.D{{Key: "day_number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []models.Day
	if err := cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	if days == nil {
		days = []models.Day{}
	}
	return days, nil
}

func (s *Store) GetDay(ctx context.Context, dayID string) (*models.Day, error) {
	var day models.Day
	if err := s.Days.FindOne(ctx, bson.M{"dayid": dayID}).Decode(&day); err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *Store) UpdateDayTitle(ctx context.Context, dayID, title string) error {
	_, err := s.Days.UpdateOne(ctx, bson.M{"dayid": dayID},
		bson.M{"$set": bson.M{"title": title}})
	return err
}

// ErrRevisionMismatch reports a failed compare-and-swap on a day revision:
// someone else reordered the day since it was read.
var ErrRevisionMismatch = fmt.Errorf("day revision mismatch")

// BumpDayRevision advances the day's revision counter only if it still holds
// the value the caller read. A mismatch means the caller's view of the day is
// stale and must be refetched.
func (s *Store) BumpDayRevision(ctx context.Context, dayID string, expected int64) (int64, error) {
	res := s.Days.FindOneAndUpdate(ctx,
		bson.M{"dayid": dayID, "revision": expected},
		bson.M{"$inc": bson.M{"revision": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var day models.Day
	if err := res.Decode(&day); err != nil {
		return 0, ErrRevisionMismatch
	}
	return day.Revision, nil
}
