package feedback

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Action is the body verb understood by the Feedback Store on PUT.
type Action string

const (
	ActionMarkRead  Action = "mark_read"
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
)

// Operation is an admin moderation step. Delete is a separate HTTP verb, the rest map to an Action.
type Operation string

const (
	OpMarkRead  Operation = "read"
	OpArchive   Operation = "archive"
	OpUnarchive Operation = "unarchive"
	OpDelete    Operation = "delete"
)

// Max length constants for visitor-supplied fields.
const (
	MaxNameLength    = 200
	MaxEmailLength   = 254
	MaxMessageLength = 5000
)

// Domain errors
var (
	ErrUnknownOperation = errors.New("unknown feedback operation")
	ErrEmptyName        = errors.New("name is required")
	ErrEmptyEmail       = errors.New("email is required")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyMessage     = errors.New("message is required")
	ErrTooLong          = errors.New("field is too long")
)

// Message is a visitor feedback record. Only visitors create messages; only the admin mutates them.
type Message struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
	IsArchived bool      `json:"is_archived"`
}

// Listing is one Feedback Store GET response. Counts cover all messages, not just the listed ones.
type Listing struct {
	Feedback      []Message `json:"feedback"`
	TotalCount    int       `json:"total_count"`
	UnreadCount   int       `json:"unread_count"`
	ArchivedCount int       `json:"archived_count"`
}

// Submission is what a visitor posts from the public form.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate checks required fields locally so nothing invalid reaches the network.
// PRE: s has been normalized
// POST: returns nil if all fields are present and within limits
func (s Submission) Validate() error {
	if s.Name == "" {
		return ErrEmptyName
	}
	if s.Email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(s.Email, "@") {
		return ErrInvalidEmail
	}
	if s.Message == "" {
		return ErrEmptyMessage
	}
	if len(s.Name) > MaxNameLength || len(s.Email) > MaxEmailLength || len(s.Message) > MaxMessageLength {
		return ErrTooLong
	}
	return nil
}

// ParseOperation maps a URL segment to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OpMarkRead, OpArchive, OpUnarchive, OpDelete:
		return Operation(s), nil
	}
	return "", ErrUnknownOperation
}

// Action returns the PUT verb for the operation. ok is false for OpDelete.
func (o Operation) Action() (Action, bool) {
	switch o {
	case OpMarkRead:
		return ActionMarkRead, true
	case OpArchive:
		return ActionArchive, true
	case OpUnarchive:
		return ActionUnarchive, true
	}
	return "", false
}

// Inbox is the admin view of feedback: exactly one of InboxLoading, InboxLoaded or InboxFailed.
// Renderers switch on the concrete type, so malformed or missing data cannot be shown as an empty list.
type Inbox interface {
	inbox()
}

// InboxLoading means no response has arrived yet.
type InboxLoading struct{}

// InboxLoaded holds both lists from a successful fetch.
type InboxLoaded struct {
	Active   Listing
	Archived Listing
}

// InboxFailed holds the reason the fetch failed.
type InboxFailed struct {
	Err error
}

func (InboxLoading) inbox() {}
func (InboxLoaded) inbox()  {}
func (InboxFailed) inbox()  {}

// Counts returns the store-wide counters. The active listing is authoritative.
func (l InboxLoaded) Counts() (total, unread, archived int) {
	return l.Active.TotalCount, l.Active.UnreadCount, l.Active.ArchivedCount
}

// Combined merges active and archived messages, newest first.
// INVARIANT: a message id appears at most once
func (l InboxLoaded) Combined() []Message {
	seen := make(map[int64]bool, len(l.Active.Feedback)+len(l.Archived.Feedback))
	out := make([]Message, 0, len(l.Active.Feedback)+len(l.Archived.Feedback))
	for _, list := range [][]Message{l.Active.Feedback, l.Archived.Feedback} {
		for _, m := range list {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
