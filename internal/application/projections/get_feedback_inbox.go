package projections

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"sporthall/internal/domain/feedback"
)

// FeedbackLister lists messages by archive flag.
type FeedbackLister interface {
	List(ctx context.Context, archived bool) (feedback.Listing, error)
}

// GetFeedbackInboxDeps holds dependencies for the inbox projection.
type GetFeedbackInboxDeps struct {
	Feedback FeedbackLister
}

// GetFeedbackInbox loads the active and archived lists together.
// POST: returns InboxLoaded when both loads succeed, InboxFailed otherwise; never nil
func GetFeedbackInbox(ctx context.Context, deps GetFeedbackInboxDeps) feedback.Inbox {
	var active, archived feedback.Listing
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = deps.Feedback.List(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		archived, err = deps.Feedback.List(gctx, true)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("feedback_inbox_load_failed", "error", err)
		return feedback.InboxFailed{Err: err}
	}
	return feedback.InboxLoaded{Active: active, Archived: archived}
}
