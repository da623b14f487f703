package dashboard

import (
	"slices"
	"sync"
	"time"

	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/domain/model/order"
)

// Snapshot is one full read of the backend collections.
type Snapshot struct {
	Offers    []*offer.Offer
	Customers []queries.CustomerListItem
	Coupons   []*coupon.Coupon
	Orders    []*order.Order
}

// OrderEntry is an order as the dashboard shows it. Order is the last confirmed
// state; Status differs from Order.Status() while a transition is pending.
type OrderEntry struct {
	Order   *order.Order
	Status  order.Status
	Pending bool
}

// Store holds the latest snapshot plus tentative order statuses. Safe for concurrent
// use. Returned slices are copies; the aggregates inside must be treated as read-only.
type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	tentative map[string]order.Status
	loadedAt  time.Time
}

func NewStore() *Store {
	return &Store{tentative: make(map[string]order.Status)}
}

func (s *Store) Offers() []*offer.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot.Offers)
}

func (s *Store) Customers() []queries.CustomerListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot.Customers)
}

func (s *Store) Coupons() []*coupon.Coupon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot.Coupons)
}

// Orders lists orders newest first with tentative statuses applied.
func (s *Store) Orders() []OrderEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]OrderEntry, 0, len(s.snapshot.Orders))
	for _, o := range s.snapshot.Orders {
		out = append(out, s.entry(o))
	}
	return out
}

func (s *Store) Order(id kernel.UUID) (OrderEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return OrderEntry{}, false
	}
	return s.entry(s.snapshot.Orders[i]), true
}

// LoadedAt is the time of the last ReplaceAll, zero before the first one.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// ReplaceAll swaps in a fresh snapshot. Tentative statuses survive for orders that
// are still present, since their backend call has not answered yet.
func (s *Store) ReplaceAll(snapshot Snapshot, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snapshot
	s.loadedAt = at

	present := make(map[string]struct{}, len(snapshot.Orders))
	for _, o := range snapshot.Orders {
		present[o.ID().String()] = struct{}{}
	}
	for key := range s.tentative {
		if _, ok := present[key]; !ok {
			delete(s.tentative, key)
		}
	}
}

// ApplyTentative shows status for the order until Confirm or Rollback. It reports
// false when the order is not in the snapshot.
func (s *Store) ApplyTentative(id kernel.UUID, status order.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return false
	}
	s.tentative[id.String()] = status
	return true
}

// Confirm stores the authoritative order and drops its tentative status. Unknown
// orders are added at the front.
func (s *Store) Confirm(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tentative, o.ID().String())
	orders := slices.Clone(s.snapshot.Orders)
	if i := s.indexOf(o.ID()); i >= 0 {
		orders[i] = o
	} else {
		orders = append([]*order.Order{o}, orders...)
	}
	s.snapshot.Orders = orders
}

// Rollback drops the tentative status and returns the last confirmed order.
func (s *Store) Rollback(id kernel.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tentative, id.String())
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.snapshot.Orders[i], true
}

func (s *Store) entry(o *order.Order) OrderEntry {
	e := OrderEntry{Order: o, Status: o.Status()}
	if status, ok := s.tentative[o.ID().String()]; ok {
		e.Status = status
		e.Pending = true
	}
	return e
}

func (s *Store) indexOf(id kernel.UUID) int {
	return slices.IndexFunc(s.snapshot.Orders, func(o *order.Order) bool {
		return o.ID().IsEqual(id)
	})
}
