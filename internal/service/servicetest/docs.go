// Package servicetest provides in-memory stores and recorders for service and handler tests.
package servicetest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
)

// Document is a store document with an ObjectID primary key
type Document[T any] interface {
	*T
	GetId() primitive.ObjectID
	SetId(id primitive.ObjectID)
}

// Docs is an in-memory document collection
type Docs[T any, PT Document[T]] struct {
	mu    sync.Mutex
	items []PT

	// CreateErr, when set, is returned by Create
	CreateErr error
}

// NewDocs creates an empty collection
func NewDocs[T any, PT Document[T]]() *Docs[T, PT] {
	return &Docs[T, PT]{}
}

func (d *Docs[T, PT]) Create(_ context.Context, doc PT) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.CreateErr != nil {
		return d.CreateErr
	}
	if doc.GetId().IsZero() {
		doc.SetId(primitive.NewObjectID())
	}
	d.items = append(d.items, doc)
	return nil
}

func (d *Docs[T, PT]) GetById(_ context.Context, id string) (PT, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.get(id), nil
}

func (d *Docs[T, PT]) get(id string) PT {
	for _, it := range d.items {
		if it.GetId().Hex() == id {
			return it
		}
	}
	return nil
}

func (d *Docs[T, PT]) Replace(_ context.Context, doc PT) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, it := range d.items {
		if it.GetId() == doc.GetId() {
			d.items[i] = doc
		}
	}
	return nil
}

func (d *Docs[T, PT]) DeleteById(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, it := range d.items {
		if it.GetId().Hex() == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (d *Docs[T, PT]) Count(_ context.Context, filter bson.M) (int64, error) {
	return int64(len(d.Find(filter))), nil
}

// Page returns the matching documents newest first
func (d *Docs[T, PT]) Page(_ context.Context, filter bson.M, p query.ListParams) ([]PT, int64, error) {
	all := d.Find(filter)
	total := int64(len(all))

	start := min(p.Skip(), total)
	end := min(start+p.Limit, total)
	return all[start:end], total, nil
}

func (d *Docs[T, PT]) FindIds(_ context.Context, filter bson.M) ([]string, error) {
	var ids []string
	for _, it := range d.Find(filter) {
		ids = append(ids, it.GetId().Hex())
	}
	return ids, nil
}

// Find returns every document matching filter, newest first
func (d *Docs[T, PT]) Find(filter bson.M) []PT {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []PT
	for i := len(d.items) - 1; i >= 0; i-- {
		if Match(toM(d.items[i]), filter) {
			out = append(out, d.items[i])
		}
	}
	return out
}

// Len is the number of stored documents
func (d *Docs[T, PT]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Customers is an in-memory customer store
type Customers struct {
	*Docs[entity.Customer, *entity.Customer]
}

// NewCustomers creates an empty customer store
func NewCustomers() *Customers {
	return &Customers{Docs: NewDocs[entity.Customer]()}
}

func (c *Customers) FindByPhone(_ context.Context, agencyId, phone string) (*entity.Customer, error) {
	found := c.Find(bson.M{"agencyId": agencyId, "phoneNumber": phone})
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

// Meetings is an in-memory meeting store
type Meetings struct {
	*Docs[entity.Meeting, *entity.Meeting]
}

// NewMeetings creates an empty meeting store
func NewMeetings() *Meetings {
	return &Meetings{Docs: NewDocs[entity.Meeting]()}
}

func upcoming(m *entity.Meeting) bool {
	return m.Status == "scheduled" || m.Status == "rescheduled"
}

func (m *Meetings) MarkPast(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, it := range m.Find(bson.M{}) {
		if upcoming(it) && !it.StartsAt.After(cutoff) {
			it.Status = "past"
			n++
		}
	}
	return n, nil
}

func (m *Meetings) FindUpcomingBetween(_ context.Context, from, to time.Time) ([]*entity.Meeting, error) {
	var out []*entity.Meeting
	for _, it := range m.Find(bson.M{}) {
		if upcoming(it) && it.StartsAt.After(from) && !it.StartsAt.After(to) {
			out = append(out, it)
		}
	}
	return out, nil
}
