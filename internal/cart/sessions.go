package cart

import "sync"

// Sessions owns one Store per signed-in student. A store is opened on first
// use and dropped at sign-out; nothing outlives the process.
type Sessions struct {
	mu     sync.Mutex
	stores map[int64]*Store
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{stores: make(map[int64]*Store)}
}

// Open returns the student's store, creating an empty one if needed.
func (s *Sessions) Open(studentID int64) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stores[studentID]
	if !ok {
		st = NewStore()
		s.stores[studentID] = st
	}
	return st
}

// Get returns the student's store if one is open.
func (s *Sessions) Get(studentID int64) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[studentID]
	return st, ok
}

// Close discards the student's cart.
func (s *Sessions) Close(studentID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, studentID)
}

// Len is the number of open carts.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}
