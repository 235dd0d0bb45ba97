package db

import (
	"context"
	"time"

	"voyago/models"
)

func (s *Store) InsertFile(ctx context.Context, att *models.Attachment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.Files.InsertOne(ctx, att)
	return err
}
