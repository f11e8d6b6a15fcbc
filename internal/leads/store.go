package leads

import "sort"

// Store accumulates accepted leads in discovery order. The scraping
// session is single threaded, so no locking is needed.
type Store struct {
	leads []Lead
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a lead. Records without the minimal identity field are
// rejected.
func (s *Store) Add(l Lead) bool {
	if !l.HasIdentity() {
		return false
	}
	s.leads = append(s.leads, l)
	return true
}

// Len returns the number of accepted leads.
func (s *Store) Len() int {
	return len(s.leads)
}

// All returns the leads in discovery order.
func (s *Store) All() []Lead {
	out := make([]Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// SortedByScore returns the leads sorted by relevancy score descending.
// The sort is stable so equal scores keep discovery order.
func (s *Store) SortedByScore() []Lead {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
