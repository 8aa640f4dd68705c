package captcha

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domain "sporthall/internal/domain/captcha"
)

// DefaultTTL bounds how long a rendered form stays answerable.
const DefaultTTL = 30 * time.Minute

// DefaultCapacity bounds memory use under form-reload floods.
const DefaultCapacity = 10000

// MemoryStore keeps challenges in process memory. They are never persisted.
type MemoryStore struct {
	mu       sync.Mutex
	items    map[string]domain.Challenge
	ttl      time.Duration
	capacity int
	src      domain.Source
	now      func() time.Time
}

// NewMemoryStore creates a store. src nil means domain.DefaultSource.
func NewMemoryStore(ttl time.Duration, src domain.Source) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if src == nil {
		src = domain.DefaultSource
	}
	return &MemoryStore{
		items:    make(map[string]domain.Challenge),
		ttl:      ttl,
		capacity: DefaultCapacity,
		src:      src,
		now:      time.Now,
	}
}

// Issue draws and remembers a new challenge.
// POST: the returned ID is unique and answerable exactly once within the TTL
func (s *MemoryStore) Issue() domain.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.items) >= s.capacity {
		s.sweep(now)
	}
	if len(s.items) >= s.capacity {
		// Still full of live challenges: drop the oldest.
		var oldestID string
		var oldest time.Time
		for id, c := range s.items {
			if oldestID == "" || c.CreatedAt.Before(oldest) {
				oldestID, oldest = id, c.CreatedAt
			}
		}
		delete(s.items, oldestID)
	}

	c := domain.New(uuid.NewString(), s.src, now)
	s.items[c.ID] = c
	return c
}

// Take implements Store.
func (s *MemoryStore) Take(id string) (domain.Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return domain.Challenge{}, false
	}
	delete(s.items, id)
	if s.now().Sub(c.CreatedAt) > s.ttl {
		return domain.Challenge{}, false
	}
	return c, true
}

// Len reports how many challenges are held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// sweep drops expired challenges.
// PRE: s.mu is held
func (s *MemoryStore) sweep(now time.Time) {
	for id, c := range s.items {
		if now.Sub(c.CreatedAt) > s.ttl {
			delete(s.items, id)
		}
	}
}
