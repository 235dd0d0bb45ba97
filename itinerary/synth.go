package itinerary

import (
	"fmt"
	"time"

	"voyago/models"
	"voyago/ordering"
	"voyago/utils"
)

// Companion synthesis: transport legs that arrive on a later day get an
// "arrival card" on that day, and multi-night accommodation gets one
// "continuation stay" per intermediate night. Companions are persisted items
// in their own right, hard-linked to their origin through
// derived_from_item_id so origin edits and deletes cascade.

// buildArrivalCard returns the arrival companion for a transport item whose
// arrival day offset is positive, or a warning when the trip is too short to
// hold it. days must be in day_number order.
func buildArrivalCard(origin *models.Item, days []models.Day) (*models.Item, string) {
	t := origin.Transport
	if t == nil || t.ArrivalDayOffset <= 0 {
		return nil, ""
	}

	idx := dayIndex(days, origin.DayID)
	if idx < 0 {
		return nil, fmt.Sprintf("day %s not found in trip; arrival card skipped", origin.DayID)
	}
	target := idx + t.ArrivalDayOffset
	if target >= len(days) {
		return nil, fmt.Sprintf("arrival lands on day %d but the trip has only %d days; arrival card skipped",
			target+1, len(days))
	}

	details := *t
	details.IsArrivalCard = true
	details.OriginalStartTime = origin.StartTime
	details.ArrivalDayOffset = 0

	card := *origin
	card.ItemID = utils.GenerateRandomString(13)
	card.DayID = days[target].DayID
	card.StartTime = origin.EndTime
	card.EndTime = origin.EndTime
	card.SortOrder = 0 // arrivals open the day
	card.Transport = &details
	card.DerivedFromItemID = origin.ItemID
	return &card, ""
}

// buildContinuationStays returns one synthetic stay per intermediate night of
// a multi-night accommodation. A checkin date matching no trip day skips
// synthesis entirely (warning, not fatal); nights past the end of the trip
// are dropped.
func buildContinuationStays(origin *models.Item, days []models.Day) ([]models.Item, string) {
	acc := origin.Accommodation
	if acc == nil || acc.CheckinDate == "" || acc.CheckoutDate == "" || acc.CheckinDate == acc.CheckoutDate {
		return nil, ""
	}

	checkin, err := time.Parse("2006-01-02", acc.CheckinDate)
	if err != nil {
		return nil, fmt.Sprintf("invalid checkin date %q; continuation stays skipped", acc.CheckinDate)
	}
	checkout, err := time.Parse("2006-01-02", acc.CheckoutDate)
	if err != nil {
		return nil, fmt.Sprintf("invalid checkout date %q; continuation stays skipped", acc.CheckoutDate)
	}
	nights := int(checkout.Sub(checkin).Hours() / 24)
	if nights <= 1 {
		return nil, ""
	}

	start := -1
	for i, d := range days {
		if d.DayDate == acc.CheckinDate {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, fmt.Sprintf("no trip day matches checkin date %s; continuation stays skipped", acc.CheckinDate)
	}

	var stays []models.Item
	for i := 1; i < nights; i++ {
		target := start + i
		if target >= len(days) {
			break
		}
		details := *acc
		details.IsGeneratedStay = true

		stay := *origin
		stay.ItemID = utils.GenerateRandomString(13)
		stay.DayID = days[target].DayID
		stay.Name = "Stay: " + origin.Name
		stay.StartTime = ""
		stay.EndTime = ""
		stay.SortOrder = ordering.AccommodationSentinel
		stay.Accommodation = &details
		stay.DerivedFromItemID = origin.ItemID
		stays = append(stays, stay)
	}
	return stays, ""
}

func dayIndex(days []models.Day, dayID string) int {
	for i, d := range days {
		if d.DayID == dayID {
			return i
		}
	}
	return -1
}
