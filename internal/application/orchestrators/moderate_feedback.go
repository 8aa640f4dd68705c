package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sporthall/internal/domain/feedback"
)

// FeedbackModerator is the admin side of the Feedback Store.
type FeedbackModerator interface {
	Apply(ctx context.Context, id int64, action feedback.Action) error
	Delete(ctx context.Context, id int64) error
}

// ModerateFeedbackInput names one moderation step.
type ModerateFeedbackInput struct {
	ID int64
	Op feedback.Operation
}

// ModerateFeedbackDeps holds dependencies for ModerateFeedback.
type ModerateFeedbackDeps struct {
	Feedback FeedbackModerator
	// Refresh reloads the full inbox after a successful call.
	Refresh func(ctx context.Context) feedback.Inbox
}

// ErrInvalidFeedbackID rejects ids the store could never have issued.
var ErrInvalidFeedbackID = errors.New("invalid feedback id")

// ExecuteModerateFeedback performs a single targeted call, then reloads the full inbox.
// Nothing is patched in place locally.
// PRE: ID > 0
// POST: on success returns the refreshed inbox; on failure returns an error and does not refresh
func ExecuteModerateFeedback(ctx context.Context, input ModerateFeedbackInput, deps ModerateFeedbackDeps) (feedback.Inbox, error) {
	if input.ID <= 0 {
		return nil, ErrInvalidFeedbackID
	}

	var err error
	if action, ok := input.Op.Action(); ok {
		err = deps.Feedback.Apply(ctx, input.ID, action)
	} else if input.Op == feedback.OpDelete {
		err = deps.Feedback.Delete(ctx, input.ID)
	} else {
		return nil, feedback.ErrUnknownOperation
	}
	if err != nil {
		slog.Error("feedback_moderation_failed", "feedback_id", input.ID, "op", input.Op, "error", err)
		return nil, fmt.Errorf("feedback %s: %w", input.Op, err)
	}
	slog.Info("feedback_moderated", "feedback_id", input.ID, "op", input.Op)

	if deps.Refresh == nil {
		return feedback.InboxLoading{}, nil
	}
	return deps.Refresh(ctx), nil
}
