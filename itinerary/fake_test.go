package itinerary

import (
	"context"
	"fmt"
	"sync"

	"voyago/models"
	"voyago/ordering"
)

// fakeGateway is an in-memory Gateway for service tests, with optional
// failure injection for the best-effort batch write path.
type fakeGateway struct {
	mu    sync.Mutex
	items map[string]*models.Item
	days  []models.Day

	failBatchAfter int  // -1 = never fail; n = fail after n rows applied
	stealRevision  bool // simulate a concurrent reorder winning the CAS
	batchCalls     int
}

func newFakeGateway(days []models.Day) *fakeGateway {
	return &fakeGateway{
		items:          make(map[string]*models.Item),
		days:           days,
		failBatchAfter: -1,
	}
}

func cloneItem(it *models.Item) *models.Item {
	cp := *it
	if it.Transport != nil {
		t := *it.Transport
		cp.Transport = &t
	}
	if it.Accommodation != nil {
		a := *it.Accommodation
		cp.Accommodation = &a
	}
	return &cp
}

func (f *fakeGateway) ListItems(_ context.Context, dayID string) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Item
	for _, it := range f.items {
		if it.DayID == dayID {
			out = append(out, *cloneItem(it))
		}
	}
	return out, nil
}

func (f *fakeGateway) GetItem(_ context.Context, itemID string) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[itemID]
	if !ok {
		return nil, fmt.Errorf("no item %s", itemID)
	}
	return cloneItem(it), nil
}

func (f *fakeGateway) CreateItem(_ context.Context, item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ItemID] = cloneItem(item)
	return nil
}

func (f *fakeGateway) ReplaceItem(_ context.Context, item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ItemID]; !ok {
		return fmt.Errorf("no item %s", item.ItemID)
	}
	f.items[item.ItemID] = cloneItem(item)
	return nil
}

func (f *fakeGateway) DeleteItem(_ context.Context, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, itemID)
	return nil
}

func (f *fakeGateway) DeleteDerivedOf(_ context.Context, originID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, it := range f.items {
		if it.DerivedFromItemID == originID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeGateway) BatchUpsertOrders(_ context.Context, orders []ordering.ItemOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	for i, o := range orders {
		if f.failBatchAfter >= 0 && i >= f.failBatchAfter {
			return fmt.Errorf("injected batch failure after %d rows", i)
		}
		if it, ok := f.items[o.ItemID]; ok {
			it.SortOrder = o.SortOrder
		}
	}
	return nil
}

func (f *fakeGateway) ListDays(_ context.Context, tripID string) ([]models.Day, error) {
	var out []models.Day
	for _, d := range f.days {
		if d.TripID == tripID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeGateway) GetDay(_ context.Context, dayID string) (*models.Day, error) {
	for i := range f.days {
		if f.days[i].DayID == dayID {
			cp := f.days[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("no day %s", dayID)
}

func (f *fakeGateway) BumpDayRevision(_ context.Context, dayID string, expected int64) (int64, error) {
	for i := range f.days {
		if f.days[i].DayID == dayID {
			if f.stealRevision {
				// another session bumped the revision between the caller's
				// read and this CAS
				f.days[i].Revision++
				f.stealRevision = false
			}
			if f.days[i].Revision != expected {
				return 0, fmt.Errorf("revision mismatch: have %d, caller read %d", f.days[i].Revision, expected)
			}
			f.days[i].Revision++
			return f.days[i].Revision, nil
		}
	}
	return 0, fmt.Errorf("no day %s", dayID)
}
