package itinerary

import (
	"context"
	"fmt"
	"log"
	"sync"

	"voyago/models"
	"voyago/mq"
	"voyago/ordering"
	"voyago/transit"
	"voyago/utils"
)

// Service orchestrates the ordering engine, the time deriver and companion
// synthesis over the persistence gateway. All in-memory computation is
// synchronous; only gateway calls suspend.
type Service struct {
	gw     Gateway
	cache  DayCache
	notify func(context.Context, mq.Event)

	// last observed revision per day, to drop responses that raced a newer
	// reorder (stale in-flight writes are superseded, not applied)
	revMu sync.Mutex
	revs  map[string]int64
}

// NewService wires the service. cache and notify may be nil.
func NewService(gw Gateway, cache DayCache, notify func(context.Context, mq.Event)) *Service {
	return &Service{gw: gw, cache: cache, notify: notify, revs: make(map[string]int64)}
}

func (s *Service) emit(ctx context.Context, evt mq.Event) {
	if s.notify != nil {
		s.notify(ctx, evt)
	}
	if s.cache != nil && evt.DayID != "" {
		s.cache.Invalidate(evt.DayID)
	}
}

// DayItems returns a day's items in display order, read through the cache.
func (s *Service) DayItems(ctx context.Context, dayID string) ([]models.Item, error) {
	if s.cache != nil {
		if items, ok := s.cache.Get(dayID); ok {
			return items, nil
		}
	}
	items, err := s.gw.ListItems(ctx, dayID)
	if err != nil {
		return nil, err
	}
	ordering.Sort(items)
	if s.cache != nil {
		s.cache.Set(dayID, items)
	}
	return items, nil
}

// AddItem persists a new item with a freshly assigned sort_order and
// synthesizes its companions. insertAfterID optionally names the sibling the
// new item should directly follow; empty means append. The returned warnings
// carry non-fatal synthesis failures.
func (s *Service) AddItem(ctx context.Context, item *models.Item, insertAfterID string) ([]string, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if item.ItemID == "" {
		item.ItemID = utils.GenerateRandomString(13)
	}
	s.deriveTransportDuration(item)

	if item.Category == models.CategoryAccommodation {
		item.SortOrder = ordering.AccommodationSentinel
	} else if insertAfterID != "" {
		v, err := s.insertionOrder(ctx, item.DayID, insertAfterID)
		if err != nil {
			return nil, err
		}
		item.SortOrder = v
	} else {
		siblings, err := s.gw.ListItems(ctx, item.DayID)
		if err != nil {
			return nil, err
		}
		item.SortOrder = appendOrder(siblings, item.Category)
	}

	if err := s.gw.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.emit(ctx, mq.Event{Kind: "item-created", TripID: item.TripID, DayID: item.DayID, ItemID: item.ItemID})

	warnings := s.synthesizeCompanions(ctx, item)
	return warnings, nil
}

// appendOrder continues whatever numbering scheme the day is already in:
// strided for days in the default sparse space, compact for days whose data
// was renumbered into contiguous 1..n (legacy imports, post-renumber days).
// Mixing the two spaces would leave a huge gap that the next renumber has to
// close anyway.
func appendOrder(siblings []models.Item, cat models.Category) float64 {
	if cat == models.CategoryAccommodation {
		return ordering.AccommodationSentinel
	}
	compact := false
	n := 0
	for _, it := range siblings {
		if it.Category == models.CategoryAccommodation {
			continue
		}
		if it.SortOrder >= ordering.Stride {
			compact = false
			break
		}
		n++
		compact = true
	}
	if compact {
		return ordering.AppendCompact(n, cat)
	}
	return ordering.Append(len(siblings), cat)
}

// insertionOrder computes a sort_order directly after the named sibling,
// renumbering the day first when the gap has degenerated.
func (s *Service) insertionOrder(ctx context.Context, dayID, afterID string) (float64, error) {
	items, err := s.gw.ListItems(ctx, dayID)
	if err != nil {
		return 0, err
	}
	ordering.Sort(items)

	prev, next, err := neighbours(items, afterID)
	if err != nil {
		return 0, err
	}
	if v, ok := ordering.InsertBetween(prev, next); ok {
		return v, nil
	}

	// Degenerate gap: close every gap in the day, then retry on the fresh
	// integer ordering. Self-healing, never surfaced to the caller.
	log.Printf("degenerate sort gap in day %s, renumbering", dayID)
	orders := ordering.Renumber(items)
	if err := s.gw.BatchUpsertOrders(ctx, orders); err != nil {
		return 0, fmt.Errorf("renumber day %s: %w", dayID, err)
	}
	if s.cache != nil {
		s.cache.Invalidate(dayID)
	}

	items, err = s.gw.ListItems(ctx, dayID)
	if err != nil {
		return 0, err
	}
	ordering.Sort(items)
	prev, next, err = neighbours(items, afterID)
	if err != nil {
		return 0, err
	}
	v, ok := ordering.InsertBetween(prev, next)
	if !ok {
		return 0, fmt.Errorf("sort gap in day %s still degenerate after renumber", dayID)
	}
	return v, nil
}

// neighbours finds the sort_order bounds around an insertion point: the named
// item and its successor in the non-accommodation display order.
func neighbours(sorted []models.Item, afterID string) (prev, next float64, err error) {
	idx := -1
	for i, it := range sorted {
		if it.ItemID == afterID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, 0, fmt.Errorf("item %s not found in day", afterID)
	}
	prev = sorted[idx].SortOrder
	next = ordering.NoFollowing
	for _, it := range sorted[idx+1:] {
		if it.Category == models.CategoryAccommodation {
			break
		}
		next = it.SortOrder
		break
	}
	return prev, next, nil
}

// UpdateItem replaces an existing item and re-synthesizes its companions
// from the new state (delete-and-regenerate keeps them consistent with the
// origin without tracking field-level diffs).
func (s *Service) UpdateItem(ctx context.Context, item *models.Item) ([]string, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.gw.GetItem(ctx, item.ItemID)
	if err != nil {
		return nil, fmt.Errorf("item %s not found: %w", item.ItemID, err)
	}
	item.TripID = existing.TripID
	item.DayID = existing.DayID
	item.SortOrder = existing.SortOrder
	item.DerivedFromItemID = existing.DerivedFromItemID
	s.deriveTransportDuration(item)

	if err := s.gw.ReplaceItem(ctx, item); err != nil {
		return nil, err
	}
	s.emit(ctx, mq.Event{Kind: "item-updated", TripID: item.TripID, DayID: item.DayID, ItemID: item.ItemID})

	var warnings []string
	if !item.IsSynthesized() {
		if err := s.gw.DeleteDerivedOf(ctx, item.ItemID); err != nil {
			return nil, err
		}
		warnings = s.synthesizeCompanions(ctx, item)
	}
	return warnings, nil
}

// DeleteItem removes an item and cascades to every companion synthesized
// from it.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.gw.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("item %s not found: %w", itemID, err)
	}
	if err := s.gw.DeleteDerivedOf(ctx, itemID); err != nil {
		return err
	}
	if err := s.gw.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.emit(ctx, mq.Event{Kind: "item-deleted", TripID: item.TripID, DayID: item.DayID, ItemID: itemID})
	return nil
}

// Reorder moves an item within its day and renumbers every sibling. The
// batch write is best-effort; on failure or on a lost revision race the
// local result is discarded and the caller must refetch server truth.
func (s *Service) Reorder(ctx context.Context, dayID, movedID string, target int) error {
	day, err := s.gw.GetDay(ctx, dayID)
	if err != nil {
		return fmt.Errorf("day %s not found: %w", dayID, err)
	}

	items, err := s.gw.ListItems(ctx, dayID)
	if err != nil {
		return err
	}
	ordering.Sort(items)

	orders, err := ordering.Reorder(items, movedID, target)
	if err != nil {
		return err
	}

	if err := s.gw.BatchUpsertOrders(ctx, orders); err != nil {
		// Partial writes may have landed; drop local state so the next read
		// reflects whatever the store actually holds.
		if s.cache != nil {
			s.cache.Invalidate(dayID)
		}
		return fmt.Errorf("reorder day %s: %w", dayID, err)
	}

	newRev, err := s.gw.BumpDayRevision(ctx, dayID, day.Revision)
	if err != nil {
		if s.cache != nil {
			s.cache.Invalidate(dayID)
		}
		return fmt.Errorf("reorder day %s superseded: %w", dayID, err)
	}
	if !s.observeRevision(dayID, newRev) {
		// A newer reorder already completed; this response is stale.
		if s.cache != nil {
			s.cache.Invalidate(dayID)
		}
		return fmt.Errorf("reorder day %s superseded by a newer write", dayID)
	}

	s.emit(ctx, mq.Event{Kind: "day-reordered", TripID: day.TripID, DayID: dayID})
	return nil
}

// observeRevision records the day revision and reports whether it advances
// the newest value seen in this session.
func (s *Service) observeRevision(dayID string, rev int64) bool {
	s.revMu.Lock()
	defer s.revMu.Unlock()
	if prev, ok := s.revs[dayID]; ok && rev <= prev {
		return false
	}
	s.revs[dayID] = rev
	return true
}

// ApplySuggestedTime sets end = start + (route + buffer) minutes on a
// car_bus or public transport item, flipping the arrival day offset when the
// addition wraps past midnight. Idempotent for unchanged inputs.
func (s *Service) ApplySuggestedTime(ctx context.Context, itemID string) (*models.Item, []string, error) {
	item, err := s.gw.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("item %s not found: %w", itemID, err)
	}
	t := item.Transport
	if t == nil || (t.SubType != models.SubTypeCarBus && t.SubType != models.SubTypePublic) {
		return nil, nil, fmt.Errorf("suggested time applies only to car_bus and public transport items")
	}

	end, dayOffset, ok := transit.ApplySuggested(item.StartTime, t.RouteMinutes+t.BufferMinutes)
	if !ok {
		return nil, nil, fmt.Errorf("item %s needs a start time and a route duration", itemID)
	}
	item.EndTime = end
	t.ArrivalDayOffset = dayOffset

	warnings, err := s.UpdateItem(ctx, item)
	if err != nil {
		return nil, nil, err
	}
	return item, warnings, nil
}

// synthesizeCompanions creates the arrival card and continuation stays an
// item calls for. Failures never block the primary write: out-of-range or
// unmatched days degrade to warnings.
func (s *Service) synthesizeCompanions(ctx context.Context, item *models.Item) []string {
	var warnings []string

	needsDays := (item.Transport != nil && item.Transport.ArrivalDayOffset > 0 && !item.Transport.IsArrivalCard) ||
		(item.Accommodation != nil && !item.Accommodation.IsGeneratedStay)
	if !needsDays {
		return nil
	}

	days, err := s.gw.ListDays(ctx, item.TripID)
	if err != nil {
		log.Printf("companion synthesis for %s: list days: %v", item.ItemID, err)
		return []string{"could not load trip days; companion items not generated"}
	}

	if item.Transport != nil && !item.Transport.IsArrivalCard {
		card, warn := buildArrivalCard(item, days)
		if warn != "" {
			log.Printf("companion synthesis for %s: %s", item.ItemID, warn)
			warnings = append(warnings, warn)
		}
		if card != nil {
			if err := s.gw.CreateItem(ctx, card); err != nil {
				warnings = append(warnings, "failed to persist arrival card")
			} else {
				s.emit(ctx, mq.Event{Kind: "item-created", TripID: card.TripID, DayID: card.DayID, ItemID: card.ItemID})
			}
		}
	}

	if item.Accommodation != nil && !item.Accommodation.IsGeneratedStay {
		stays, warn := buildContinuationStays(item, days)
		if warn != "" {
			log.Printf("companion synthesis for %s: %s", item.ItemID, warn)
			warnings = append(warnings, warn)
		}
		for i := range stays {
			if err := s.gw.CreateItem(ctx, &stays[i]); err != nil {
				warnings = append(warnings, "failed to persist a continuation stay")
				continue
			}
			s.emit(ctx, mq.Event{Kind: "item-created", TripID: stays[i].TripID, DayID: stays[i].DayID, ItemID: stays[i].ItemID})
		}
	}
	return warnings
}

// deriveTransportDuration recomputes the stored duration text from the leg's
// current inputs. Inconsistent inputs clear the text rather than persisting
// a negative duration.
func (s *Service) deriveTransportDuration(item *models.Item) {
	t := item.Transport
	if t == nil {
		return
	}
	switch t.SubType {
	case models.SubTypeFlightTrain:
		d := transit.Flight(item.StartTime, item.EndTime, t.DepOffset, t.ArrOffset, t.ArrivalDayOffset)
		t.DurationText = d.DurationText
		if d.Auto {
			t.DurationText = "🤖 " + d.DurationText
		}
	case models.SubTypeCarBus, models.SubTypePublic:
		t.DurationText = transit.Road(t.RouteMinutes, t.BufferMinutes).DurationText
	}
}
