package gallery

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyURL   = errors.New("photo url is required")
	ErrEmptyTitle = errors.New("photo title is required")
	ErrEmptyID    = errors.New("photo id is required")
)

// Photo is a gallery record. IDs are assigned by the Content Store.
type Photo struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Validate checks the fields the admin form requires.
// PRE: none
// POST: returns nil if URL and Title are non-blank
func (p Photo) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return ErrEmptyURL
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Patch is a partial update. Nil fields are left as they are.
type Patch struct {
	URL         *string
	Title       *string
	Description *string
}

// Apply returns a copy of p with the patch's non-nil fields written over it.
// INVARIANT: p is not mutated
func (pt Patch) Apply(p Photo) Photo {
	if pt.URL != nil {
		p.URL = *pt.URL
	}
	if pt.Title != nil {
		p.Title = *pt.Title
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	return p
}

// Find returns the photo with the given id.
func Find(photos []Photo, id string) (Photo, bool) {
	for _, p := range photos {
		if p.ID == id {
			return p, true
		}
	}
	return Photo{}, false
}
