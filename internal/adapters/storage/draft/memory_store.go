package draft

import (
	"sync"

	domain "sporthall/internal/domain/content"
)

// MemoryStore keeps drafts in process memory. A restart discards unsaved edits.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]*domain.Draft
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]*domain.Draft)}
}

// With implements Store. seed runs without the lock held.
func (s *MemoryStore) With(token string, seed Seed, fn func(d *domain.Draft) error) error {
	s.mu.Lock()
	_, ok := s.drafts[token]
	s.mu.Unlock()

	if !ok {
		c, err := seed()
		if err != nil {
			return err
		}
		s.mu.Lock()
		if _, raced := s.drafts[token]; !raced {
			s.drafts[token] = domain.NewDraft(c)
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[token]
	if !ok {
		// Deleted by a concurrent logout.
		return ErrGone
	}
	return fn(d)
}

// Reset implements Store.
func (s *MemoryStore) Reset(token string, c domain.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[token] = domain.NewDraft(c)
}

// Delete implements Store.
func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, token)
}

// Len reports how many drafts are held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
