package application

import (
	"sync"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

// Selection is the set of confirmations marked for a bulk action, keyed by
// confirmation id and kept in insertion order. Cleared when a bulk action
// succeeds; retained on failure so the user can retry the same batch.
type Selection struct {
	mu    sync.Mutex
	order []string
	refs  map[string]domain.ConfirmationRef
}

func NewSelection() *Selection {
	return &Selection{refs: make(map[string]domain.ConfirmationRef)}
}

// Add marks a confirmation. Re-adding an id updates its nonce in place.
func (s *Selection) Add(ref domain.ConfirmationRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.refs[ref.ID]; !ok {
		s.order = append(s.order, ref.ID)
	}
	s.refs[ref.ID] = ref
}

func (s *Selection) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.refs[id]; !ok {
		return
	}
	delete(s.refs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.refs[id]
	return ok
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Refs returns the selected confirmations in the order they were marked.
func (s *Selection) Refs() []domain.ConfirmationRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := make([]domain.ConfirmationRef, 0, len(s.order))
	for _, id := range s.order {
		refs = append(refs, s.refs[id])
	}
	return refs
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.refs = make(map[string]domain.ConfirmationRef)
}
