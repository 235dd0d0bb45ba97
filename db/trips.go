package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voyago/models"
)

func (s *Store) InsertTrip(ctx context.Context, trip *models.Trip) error {
	_, err := s.Trips.InsertOne(ctx, trip)
	return err
}

func (s *Store) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := s.Trips.FindOne(ctx, bson.M{"tripid": tripID, "deleted": bson.M{"$ne": true}}).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *Store) GetTripByShareToken(ctx context.Context, token string) (*models.Trip, error) {
	var trip models.Trip
	err := s.Trips.FindOne(ctx, bson.M{"share_token": token, "deleted": bson.M{"$ne": true}}).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *Store) ListTripsByUser(ctx context.Context, userID string) ([]models.Trip, error) {
	cursor, err := s.Trips.Find(ctx,
		bson.M{"user_id": userID, "deleted": bson.M{"$ne": true}},
		options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	return trips, nil
}

// UpdateTripSettings patches the user-editable trip fields.
func (s *Store) UpdateTripSettings(ctx context.Context, tripID, title string, budget *float64, is24hr bool) error {
	_, err := s.Trips.UpdateOne(ctx, bson.M{"tripid": tripID}, bson.M{"$set": bson.M{
		"title":       title,
		"budget_goal": budget,
		"is_24hr":     is24hr,
	}})
	return err
}

// SetShareToken publishes (non-nil token) or unpublishes (nil) a trip.
func (s *Store) SetShareToken(ctx context.Context, tripID string, token *string) error {
	_, err := s.Trips.UpdateOne(ctx, bson.M{"tripid": tripID},
		bson.M{"$set": bson.M{"share_token": token}})
	return err
}

// DeleteTripCascade soft-deletes the trip and removes its days and items.
func (s *Store) DeleteTripCascade(ctx context.Context, tripID string) error {
	if _, err := s.Items.DeleteMany(ctx, bson.M{"tripid": tripID}); err != nil {
		return err
	}
	if _, err := s.Days.DeleteMany(ctx, bson.M{"tripid": tripID}); err != nil {
		return err
	}
	_, err := s.Trips.UpdateOne(ctx, bson.M{"tripid": tripID},
		bson.M{"$set": bson.M{"deleted": true}})
	return err
}
