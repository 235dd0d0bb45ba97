package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"voyago/models"
)

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := s.Users.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := s.Users.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := s.Users.CountDocuments(ctx, bson.M{"username": username})
	return n > 0, err
}

func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.Users.InsertOne(ctx, user)
	return err
}

// SetRefreshToken stores the hashed refresh token; pass empty values to clear.
func (s *Store) SetRefreshToken(ctx context.Context, userID, hashed string, expiry time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.Users.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{
		"$set": bson.M{
			"refresh_token":  hashed,
			"refresh_expiry": expiry,
			"last_login":     time.Now(),
		},
	})
	return err
}
