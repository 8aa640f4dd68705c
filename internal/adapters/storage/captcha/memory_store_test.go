package captcha

import (
	"testing"
	"time"
)

func TestMemoryStore_SingleUse(t *testing.T) {
	s := NewMemoryStore(time.Minute, nil)
	c := s.Issue()
	got, ok := s.Take(c.ID)
	if !ok || got != c {
		t.Fatalf("Take = %+v, %v", got, ok)
	}
	if _, ok := s.Take(c.ID); ok {
		t.Error("challenge answerable twice")
	}
	if _, ok := s.Take("unknown"); ok {
		t.Error("unknown id accepted")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute, nil)
	s.now = func() time.Time { return now }
	c := s.Issue()
	now = now.Add(2 * time.Minute)
	if _, ok := s.Take(c.ID); ok {
		t.Error("expired challenge accepted")
	}
}

func TestMemoryStore_Capacity(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Hour, nil)
	s.capacity = 3
	s.now = func() time.Time { now = now.Add(time.Second); return now }

	first := s.Issue()
	for i := 0; i < 5; i++ {
		s.Issue()
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	if _, ok := s.Take(first.ID); ok {
		t.Error("oldest challenge should have been evicted")
	}
}
