package models

import "fmt"

// Category selects which details payload an item carries.
type Category string

const (
	CategoryActivity      Category = "activity"
	CategoryFood          Category = "food"
	CategoryAccommodation Category = "accommodation"
	CategoryTransport     Category = "transport"
	CategoryNote          Category = "note"
	CategoryOther         Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryActivity, CategoryFood, CategoryAccommodation,
		CategoryTransport, CategoryNote, CategoryOther:
		return true
	}
	return false
}

// Transport sub-types.
const (
	SubTypeFlightTrain = "flight_train"
	SubTypeCarBus      = "car_bus"
	SubTypePublic      = "public"
)

// Traveler is a per-person sub-record on a transport leg.
type Traveler struct {
	Name       string `json:"name" bson:"name"`
	Seat       string `json:"seat" bson:"seat"`
	BookingRef string `json:"booking_ref" bson:"booking_ref"`
	Cost       string `json:"cost" bson:"cost"`
}

// TransportDetails is the transport arm of the details union.
// DepOffset/ArrOffset are UTC offsets in minutes and stay nil until a place
// lookup resolves them; nil means "assume same timezone".
type TransportDetails struct {
	SubType           string     `json:"sub_type" bson:"sub_type"`
	Company           string     `json:"company" bson:"company"`
	VehicleNumber     string     `json:"vehicle_number" bson:"vehicle_number"`
	ArrivalLocation   string     `json:"arrival_location" bson:"arrival_location"`
	DepartureTerminal string     `json:"departure_terminal" bson:"departure_terminal"`
	ArrivalTerminal   string     `json:"arrival_terminal" bson:"arrival_terminal"`
	DepOffset         *int       `json:"dep_offset" bson:"dep_offset"`
	ArrOffset         *int       `json:"arr_offset" bson:"arr_offset"`
	DurationText      string     `json:"duration_text" bson:"duration_text"`
	ArrivalDayOffset  int        `json:"arrival_day_offset" bson:"arrival_day_offset"`
	DistanceText      string     `json:"distance_text" bson:"distance_text"`
	RouteMinutes      int        `json:"route_minutes" bson:"route_minutes"`
	BufferMinutes     int        `json:"buffer_minutes" bson:"buffer_minutes"`
	Travelers         []Traveler `json:"travelers" bson:"travelers"`
	IsArrivalCard     bool       `json:"is_arrival_card" bson:"is_arrival_card"`
	// departure time of the origin leg, carried on arrival cards only
	OriginalStartTime string `json:"original_start_time,omitempty" bson:"original_start_time,omitempty"`
}

// AccommodationDetails is the accommodation arm of the details union.
type AccommodationDetails struct {
	CheckinDate     string `json:"checkin_date" bson:"checkin_date"`
	CheckoutDate    string `json:"checkout_date" bson:"checkout_date"`
	Agent           string `json:"agent" bson:"agent"`
	IsPaid          bool   `json:"is_paid" bson:"is_paid"`
	Currency        string `json:"currency" bson:"currency"`
	IsGeneratedStay bool   `json:"is_generated_stay" bson:"is_generated_stay"`
}

// Item is a single itinerary entry on one day. TripID is denormalized so a
// whole trip's items can be fetched in one query.
type Item struct {
	ItemID   string   `json:"itemid" bson:"itemid"`
	TripID   string   `json:"tripid" bson:"tripid"`
	DayID    string   `json:"dayid" bson:"dayid"`
	Category Category `json:"category" bson:"category"`
	Name     string   `json:"name" bson:"name"`

	StartTime string `json:"start_time,omitempty" bson:"start_time,omitempty"` // HH:MM wall clock
	EndTime   string `json:"end_time,omitempty" bson:"end_time,omitempty"`

	LocationName string   `json:"location_name" bson:"location_name"`
	Address      string   `json:"address" bson:"address"`
	Phone        string   `json:"phone" bson:"phone"`
	Website      string   `json:"website" bson:"website"`
	Rating       *float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	OpeningHours string   `json:"opening_hours" bson:"opening_hours"`

	Cost     float64 `json:"cost" bson:"cost"`
	Currency string  `json:"currency" bson:"currency"`
	Notes    string  `json:"notes" bson:"notes"`

	AttachmentURL  string `json:"attachment_url,omitempty" bson:"attachment_url,omitempty"`
	AttachmentType string `json:"attachment_type,omitempty" bson:"attachment_type,omitempty"` // image | pdf

	IsReserved       bool   `json:"is_reserved" bson:"is_reserved"`
	ReservationAgent string `json:"reservation_agent,omitempty" bson:"reservation_agent,omitempty"`

	SortOrder float64 `json:"sort_order" bson:"sort_order"`

	// Exactly one of these is non-nil, keyed by Category (transport and
	// accommodation respectively); all other categories carry neither.
	Transport     *TransportDetails     `json:"transport_details,omitempty" bson:"transport_details,omitempty"`
	Accommodation *AccommodationDetails `json:"accommodation_details,omitempty" bson:"accommodation_details,omitempty"`

	// Synthesized companions (arrival cards, continuation stays) point back
	// at the item that produced them so changes to the origin can cascade.
	DerivedFromItemID string `json:"derived_from_item_id,omitempty" bson:"derived_from_item_id,omitempty"`
}

// Validate enforces the details union at the persistence boundary: the
// payload arm must match the category, and the category must be known.
func (it *Item) Validate() error {
	if !it.Category.Valid() {
		return fmt.Errorf("unknown category %q", it.Category)
	}
	if it.Name == "" {
		return fmt.Errorf("item name is required")
	}
	switch it.Category {
	case CategoryTransport:
		if it.Transport == nil {
			return fmt.Errorf("transport item missing transport_details")
		}
		if it.Accommodation != nil {
			return fmt.Errorf("transport item carries accommodation_details")
		}
		switch it.Transport.SubType {
		case SubTypeFlightTrain, SubTypeCarBus, SubTypePublic:
		default:
			return fmt.Errorf("unknown transport sub_type %q", it.Transport.SubType)
		}
	case CategoryAccommodation:
		if it.Accommodation == nil {
			return fmt.Errorf("accommodation item missing accommodation_details")
		}
		if it.Transport != nil {
			return fmt.Errorf("accommodation item carries transport_details")
		}
	default:
		if it.Transport != nil || it.Accommodation != nil {
			return fmt.Errorf("%s item must not carry a details payload", it.Category)
		}
	}
	return nil
}

// IsSynthesized reports whether the item is a generated companion record.
func (it *Item) IsSynthesized() bool {
	if it.Transport != nil && it.Transport.IsArrivalCard {
		return true
	}
	if it.Accommodation != nil && it.Accommodation.IsGeneratedStay {
		return true
	}
	return false
}
