package trips

import (
	"fmt"
	"time"

	"voyago/models"
	"voyago/utils"
)

const dateLayout = "2006-01-02"

// GenerateDays expands a trip's inclusive date range into its Day rows:
// one per calendar date, numbered contiguously from 1.
func GenerateDays(tripID, startDate, endDate string) ([]models.Day, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q", endDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}

	span := int(end.Sub(start).Hours()/24) + 1
	days := make([]models.Day, 0, span)
	for i := 0; i < span; i++ {
		days = append(days, models.Day{
			DayID:     utils.GenerateRandomString(13),
			TripID:    tripID,
			DayNumber: i + 1,
			DayDate:   start.AddDate(0, 0, i).Format(dateLayout),
			Title:     fmt.Sprintf("Day %d", i+1),
		})
	}

	// day_count must equal the inclusive span; anything else is a bug in
	// the expansion above, caught before rows hit the store
	if len(days) != span {
		return nil, fmt.Errorf("generated %d days for a %d-day range", len(days), span)
	}
	return days, nil
}
