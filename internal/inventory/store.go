// Package inventory implements the bounded resource ledgers carried by ships,
// asteroids and depots, and the transfer protocol between them.
package inventory

import "sort"

// Observer receives fire-and-forget notifications when a Store changes.
type Observer interface {
	OnItemsAdded(s *Store, t ResourceType, qty int)
	OnItemsRemoved(s *Store, t ResourceType, qty int)
}

// Store is a capacity-bounded mapping from resource type to quantity.
// The sum of all quantities never exceeds MaxUnits and no entry is ever zero.
type Store struct {
	MaxUnits  int
	contents  map[ResourceType]int
	observers []Observer
}

// NewStore creates an empty Store holding at most maxUnits.
func NewStore(maxUnits int) *Store {
	if maxUnits < 0 {
		maxUnits = 0
	}
	return &Store{
		MaxUnits: maxUnits,
		contents: make(map[ResourceType]int),
	}
}

// Observe registers o for add/remove notifications.
func (s *Store) Observe(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// Total returns the number of units held across all types.
func (s *Store) Total() int {
	n := 0
	for _, q := range s.contents {
		n += q
	}
	return n
}

// AvailableSpace returns how many more units fit.
func (s *Store) AvailableSpace() int { return s.MaxUnits - s.Total() }

// CanAdd reports whether qty units of t would fit.
func (s *Store) CanAdd(_ ResourceType, qty int) bool { return qty <= s.AvailableSpace() }

// Quantity returns the amount of t held (zero when absent).
func (s *Store) Quantity(t ResourceType) int { return s.contents[t] }

// Add stores qty units of t. It returns false and changes nothing when the
// units do not fit.
func (s *Store) Add(t ResourceType, qty int) bool {
	if qty < 0 || !s.CanAdd(t, qty) {
		return false
	}
	if qty == 0 {
		return true
	}
	s.contents[t] += qty
	for _, o := range s.observers {
		o.OnItemsAdded(s, t, qty)
	}
	return true
}

// Remove takes qty units of t. It returns false and changes nothing when fewer
// than qty units are held.
func (s *Store) Remove(t ResourceType, qty int) bool {
	if qty < 0 || s.contents[t] < qty {
		return false
	}
	if qty == 0 {
		return true
	}
	s.contents[t] -= qty
	if s.contents[t] == 0 {
		delete(s.contents, t)
	}
	for _, o := range s.observers {
		o.OnItemsRemoved(s, t, qty)
	}
	return true
}

// Contents returns a copy of the held quantities.
func (s *Store) Contents() map[ResourceType]int {
	out := make(map[ResourceType]int, len(s.contents))
	for t, q := range s.contents {
		out[t] = q
	}
	return out
}

// Types returns the held types in ascending order.
func (s *Store) Types() []ResourceType {
	out := make([]ResourceType, 0, len(s.contents))
	for t := range s.contents {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Fraction returns Total/MaxUnits in [0,1].
func (s *Store) Fraction() float64 {
	if s.MaxUnits <= 0 {
		return 1
	}
	return float64(s.Total()) / float64(s.MaxUnits)
}
