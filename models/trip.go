package models

import "time"

// Trip is the top-level aggregate. Days are created in a batch spanning
// [StartDate, EndDate] inclusive when the trip is created.
type Trip struct {
	TripID     string   `json:"tripid" bson:"tripid"`
	UserID     string   `json:"user_id" bson:"user_id"`
	Title      string   `json:"title" bson:"title"`
	StartDate  string   `json:"start_date" bson:"start_date"` // YYYY-MM-DD
	EndDate    string   `json:"end_date" bson:"end_date"`
	BudgetGoal *float64 `json:"budget_goal,omitempty" bson:"budget_goal,omitempty"`
	Is24Hr     bool     `json:"is_24hr" bson:"is_24hr"`
	// non-nil token means the trip is publicly readable via /api/shared/:token
	ShareToken *string   `json:"share_token,omitempty" bson:"share_token,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Deleted    bool      `json:"-" bson:"deleted,omitempty"`
}

// Day belongs to exactly one trip. DayNumber is 1-based and contiguous;
// DayDate = trip start + (DayNumber - 1). Both are immutable after creation.
type Day struct {
	DayID     string `json:"dayid" bson:"dayid"`
	TripID    string `json:"tripid" bson:"tripid"`
	DayNumber int    `json:"day_number" bson:"day_number"`
	DayDate   string `json:"day_date" bson:"day_date"`
	Title     string `json:"title" bson:"title"`
	// Revision is bumped with a compare-and-swap on every reorder so that
	// concurrent or stale writers can be detected and dropped.
	Revision int64 `json:"revision" bson:"revision"`
}
