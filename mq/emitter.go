// Package mq publishes itinerary change events over Redis pub/sub. The live
// hub worker subscribes and turns them into per-trip refresh notices, and the
// day cache is invalidated on the way in, so every write path funnels through
// Emit exactly once.
package mq

import (
	"context"
	"encoding/json"
	"log"

	"voyago/rdx"
)

const channel = "itinerary-events"

// Event describes one mutation of a trip's itinerary.
type Event struct {
	Kind   string `json:"kind"` // item-created, item-updated, item-deleted, day-reordered, trip-updated
	TripID string `json:"tripid"`
	DayID  string `json:"dayid,omitempty"`
	ItemID string `json:"itemid,omitempty"`
}

// Emit invalidates the affected day cache and publishes the event. Publish
// failures are logged, not returned: notification is best-effort and must
// never fail the write that triggered it.
func Emit(ctx context.Context, evt Event) {
	if evt.DayID != "" {
		rdx.InvalidateDay(evt.DayID)
	}

	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("mq: marshal %s event: %v", evt.Kind, err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("mq: publish %s event: %v", evt.Kind, err)
	}
}

// Subscribe delivers itinerary events until ctx is cancelled.
func Subscribe(ctx context.Context, fn func(Event)) {
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()
	log.Println("mq: listening for itinerary events")

	for {
		select {
		case <-ctx.Done():
			sub.Close()
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				log.Printf("mq: bad event payload: %v", err)
				continue
			}
			fn(evt)
		}
	}
}
