// Package db wraps the MongoDB collections behind a constructed Store that
// handlers receive by injection; there is no package-level client.
package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Store struct {
	Client *mongo.Client

	Trips *mongo.Collection
	Days  *mongo.Collection
	Items *mongo.Collection
	Users *mongo.Collection
	Files *mongo.Collection
}

// Connect dials MongoDB and returns a Store scoped to the application
// session; callers own Close.
func Connect(ctx context.Context) (*Store, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "voyago"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	database := client.Database(dbName)
	s := &Store{
		Client: client,
		Trips:  database.Collection("trips"),
		Days:   database.Collection("trip_days"),
		Items:  database.Collection("itinerary_items"),
		Users:  database.Collection("users"),
		Files:  database.Collection("files"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.Items.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: map[string]any{"dayid": 1}},
		{Keys: map[string]any{"tripid": 1}},
		{Keys: map[string]any{"derived_from_item_id": 1}},
	})
	if err != nil {
		return fmt.Errorf("item indexes: %w", err)
	}

	_, err = s.Days.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: map[string]any{"tripid": 1}},
		{Keys: map[string]any{"dayid": 1}},
	})
	if err != nil {
		return fmt.Errorf("day indexes: %w", err)
	}

	_, err = s.Trips.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: map[string]any{"tripid": 1}},
		{Keys: map[string]any{"share_token": 1}},
	})
	if err != nil {
		return fmt.Errorf("trip indexes: %w", err)
	}
	return nil
}
