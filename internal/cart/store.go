// Package cart holds the in-memory carts of signed-in students.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
)

// Store is one student's cart. Items keep insertion order. All methods are
// safe for concurrent use and never fail; unknown ids are ignored.
type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem bumps the quantity of an existing line by one, or appends the
// candidate with quantity 1. Items from another vendor are accepted here.
func (s *Store) AddItem(candidate domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(candidate.ID); i >= 0 {
		s.items[i].Quantity++
		return
	}
	candidate.Quantity = 1
	s.items = append(s.items, candidate)
}

// RemoveItem drops the line with id.
func (s *Store) RemoveItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// UpdateQuantity sets the quantity to n. n <= 0 removes the line.
func (s *Store) UpdateQuantity(id int64, n int) {
	if n <= 0 {
		s.RemoveItem(id)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity = n
	}
}

// RemoveLines takes the given lines out of the cart after they were ordered.
// Each line's quantity is subtracted from the matching entry; entries that
// reach zero are dropped. Items added since the lines were read stay.
func (s *Store) RemoveLines(lines []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range lines {
		i := s.indexOf(l.ID)
		if i < 0 {
			continue
		}
		s.items[i].Quantity -= l.Quantity
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// TotalAmount is the exact sum of price times quantity.
func (s *Store) TotalAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalCount is the sum of quantities.
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Snapshot is a consistent view of the cart for rendering and checkout.
type Snapshot struct {
	Items       []domain.CartItem `json:"items"`
	TotalAmount domain.Money      `json:"total_amount"`
	TotalCount  int               `json:"total_count"`
	VendorIDs   []int64           `json:"vendor_ids"`
}

// Snapshot reads items and totals under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Items: make([]domain.CartItem, len(s.items)), VendorIDs: []int64{}}
	copy(snap.Items, s.items)
	total := decimal.Zero
	seen := make(map[int64]struct{})
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
		snap.TotalCount += it.Quantity
		if _, ok := seen[it.VendorID]; !ok {
			seen[it.VendorID] = struct{}{}
			snap.VendorIDs = append(snap.VendorIDs, it.VendorID)
		}
	}
	snap.TotalAmount = domain.MYR(total)
	return snap
}
