package content

import (
	"errors"
	"fmt"
)

// Placeholder texts appended by AddRule / AddSafety.
const (
	NewRulePlaceholder   = "Новое правило"
	NewSafetyPlaceholder = "Новое правило безопасности"
)

// Contact field names accepted by UpdateContactField.
const (
	FieldAddress = "address"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldHours   = "hours"
)

// Sport field names accepted by UpdateSportField.
const (
	FieldName  = "name"
	FieldImage = "image"
	FieldVideo = "video"
)

// Domain errors
var (
	ErrUnknownField    = errors.New("unknown field")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDuplicateSport  = errors.New("sport ids must be unique")
	ErrEmptySportID    = errors.New("sport id cannot be empty")
)

// Contact is the singleton contacts record. It is always overwritten as a whole.
type Contact struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Hours   string `json:"hours"`
}

// Sport describes one sport in the public catalog.
// INVARIANT: ID is a stable slug, unique within a catalog.
type Sport struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Image  string   `json:"image"`
	Rules  []string `json:"rules"`
	Safety []string `json:"safety"`
	Video  string   `json:"video"`
}

// Content is what the Content Store returns on a plain GET.
type Content struct {
	Contacts Contact `json:"contacts"`
	Sports   []Sport `json:"sports"`
}

// ValidateSports checks the catalog-level invariants.
// PRE: none
// POST: returns nil if every ID is non-empty and unique
func ValidateSports(sports []Sport) error {
	seen := make(map[string]bool, len(sports))
	for _, s := range sports {
		if s.ID == "" {
			return ErrEmptySportID
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateSport, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// Clone returns a deep copy of the sport.
func (s Sport) Clone() Sport {
	out := s
	out.Rules = cloneStrings(s.Rules)
	out.Safety = cloneStrings(s.Safety)
	return out
}

// Clone returns a deep copy of the content.
func (c Content) Clone() Content {
	out := Content{Contacts: c.Contacts}
	if c.Sports != nil {
		out.Sports = make([]Sport, len(c.Sports))
		for i, s := range c.Sports {
			out.Sports[i] = s.Clone()
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
