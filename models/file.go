package models

import "time"

// Attachment is a stored upload referenced from a note item.
type Attachment struct {
	FileID       string    `json:"file_id" bson:"_id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	TripID       string    `json:"trip_id,omitempty" bson:"trip_id,omitempty"`
	Kind         string    `json:"kind" bson:"kind"` // image | pdf
	URL          string    `json:"url" bson:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	Size         int64     `json:"size" bson:"size"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
