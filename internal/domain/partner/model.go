package partner

import (
	"errors"
	"strconv"
	"strings"
)

// Defaults for a freshly added row in the admin panel.
const (
	NewName = "Новый партнёр"
	NewURL  = "https://"
)

// Domain errors
var (
	ErrEmptyName  = errors.New("partner name is required")
	ErrInvalidURL = errors.New("partner url must start with http:// or https://")
)

// Partner is an organisation linked from the footer.
type Partner struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// New returns the placeholder row the admin panel appends.
func New() Partner {
	return Partner{Name: NewName, URL: NewURL}
}

// Validate checks a single partner.
func (p Partner) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	u := strings.TrimSpace(p.URL)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return ErrInvalidURL
	}
	return nil
}

// ValidateAll checks every partner and reports the first failure with its position.
func ValidateAll(list []Partner) error {
	for i, p := range list {
		if err := p.Validate(); err != nil {
			return &IndexError{Index: i, Err: err}
		}
	}
	return nil
}

// IndexError locates a validation failure in a list.
type IndexError struct {
	Index int
	Err   error
}

func (e *IndexError) Error() string {
	return "partner " + strconv.Itoa(e.Index+1) + ": " + e.Err.Error()
}

func (e *IndexError) Unwrap() error { return e.Err }
