package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"sporthall/internal/domain/feedback"
)

// FeedbackClient is the Feedback Store adapter. Submissions go to a separate endpoint.
type FeedbackClient struct {
	manageURL string
	submitURL string
	http      *http.Client
}

// NewFeedbackClient creates a FeedbackClient.
// PRE: manageURL and submitURL are absolute
func NewFeedbackClient(manageURL, submitURL string, client *http.Client) *FeedbackClient {
	return &FeedbackClient{manageURL: manageURL, submitURL: submitURL, http: client}
}

type messageWire struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Message    string  `json:"message"`
	CreatedAt  *string `json:"created_at"`
	IsRead     *bool   `json:"is_read"`
	IsArchived *bool   `json:"is_archived"`
}

type listingWire struct {
	Feedback      *[]messageWire `json:"feedback"`
	TotalCount    int            `json:"total_count"`
	UnreadCount   int            `json:"unread_count"`
	ArchivedCount int            `json:"archived_count"`
}

// List fetches messages with the given archive flag plus store-wide counts.
// POST: a body without a "feedback" array is an ErrDecode error, never an empty listing
func (c *FeedbackClient) List(ctx context.Context, archived bool) (feedback.Listing, error) {
	u, err := withQuery(c.manageURL, url.Values{"archived": {strconv.FormatBool(archived)}})
	if err != nil {
		return feedback.Listing{}, err
	}
	var wire listingWire
	if err := doJSON(ctx, c.http, http.MethodGet, u, nil, &wire); err != nil {
		return feedback.Listing{}, fmt.Errorf("list feedback: %w", err)
	}
	if wire.Feedback == nil {
		return feedback.Listing{}, fmt.Errorf("list feedback: %w: missing feedback array", ErrDecode)
	}

	out := feedback.Listing{
		Feedback:      make([]feedback.Message, 0, len(*wire.Feedback)),
		TotalCount:    wire.TotalCount,
		UnreadCount:   wire.UnreadCount,
		ArchivedCount: wire.ArchivedCount,
	}
	for _, w := range *wire.Feedback {
		m := feedback.Message{ID: w.ID, Name: w.Name, Email: w.Email, Message: w.Message}
		if w.CreatedAt != nil {
			ts, err := parseTimestamp(*w.CreatedAt)
			if err != nil {
				return feedback.Listing{}, fmt.Errorf("list feedback: message %d: %w", w.ID, err)
			}
			m.CreatedAt = ts
		}
		if w.IsRead != nil {
			m.IsRead = *w.IsRead
		}
		if w.IsArchived != nil {
			m.IsArchived = *w.IsArchived
		}
		out.Feedback = append(out.Feedback, m)
	}
	return out, nil
}

// Apply sends a mark_read, archive or unarchive action for one message.
func (c *FeedbackClient) Apply(ctx context.Context, id int64, action feedback.Action) error {
	u, err := withQuery(c.manageURL, url.Values{"id": {strconv.FormatInt(id, 10)}})
	if err != nil {
		return err
	}
	body := map[string]string{"action": string(action)}
	if err := doJSON(ctx, c.http, http.MethodPut, u, body, nil); err != nil {
		return fmt.Errorf("feedback %d %s: %w", id, action, err)
	}
	return nil
}

// Delete removes one message.
func (c *FeedbackClient) Delete(ctx context.Context, id int64) error {
	u, err := withQuery(c.manageURL, url.Values{"id": {strconv.FormatInt(id, 10)}})
	if err != nil {
		return err
	}
	if err := doJSON(ctx, c.http, http.MethodDelete, u, nil, nil); err != nil {
		return fmt.Errorf("delete feedback %d: %w", id, err)
	}
	return nil
}

// Submit posts a visitor message.
// PRE: s has been validated
func (c *FeedbackClient) Submit(ctx context.Context, s feedback.Submission) error {
	if err := doJSON(ctx, c.http, http.MethodPost, c.submitURL, s, nil); err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	return nil
}
