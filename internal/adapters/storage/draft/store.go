package draft

import (
	"errors"

	domain "sporthall/internal/domain/content"
)

// ErrGone means the draft was discarded while a call was waiting for it.
var ErrGone = errors.New("draft discarded")

// Seed supplies the starting content for a new draft.
type Seed func() (domain.Content, error)

// Store holds one content draft per admin session.
type Store interface {
	// With runs fn on the session's draft, creating it from seed when absent.
	// Calls for the same store are serialised.
	With(token string, seed Seed, fn func(d *domain.Draft) error) error
	// Reset replaces the session's draft with c.
	Reset(token string, c domain.Content)
	// Delete discards the session's draft.
	Delete(token string)
}
