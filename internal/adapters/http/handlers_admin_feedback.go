package web

import (
	"context"
	"net/http"
	"strconv"

	"sporthall/internal/application/orchestrators"
	"sporthall/internal/domain/feedback"
)

// handleModerateFeedback handles POST /admin/feedback/{id}/{op}.
func handleModerateFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		fail(w, r, tabFeedback, orchestrators.ErrInvalidFeedbackID)
		return
	}
	op, err := feedback.ParseOperation(r.PathValue("op"))
	if err != nil {
		fail(w, r, tabFeedback, err)
		return
	}

	inbox, err := orchestrators.ExecuteModerateFeedback(r.Context(), orchestrators.ModerateFeedbackInput{ID: id, Op: op},
		orchestrators.ModerateFeedbackDeps{
			Feedback: stores.Feedback,
			Refresh:  func(ctx context.Context) feedback.Inbox { return loadInbox(ctx) },
		})
	if err != nil {
		fail(w, r, tabFeedback, err)
		return
	}
	done(w, r, tabFeedback, okFeedbackUpdated, newInboxView(inbox))
}

// handleUnread handles GET /admin/api/unread with the last polled count for this session.
func handleUnread(w http.ResponseWriter, r *http.Request) {
	count, ok := 0, false
	if services.Pollers != nil {
		count, ok = services.Pollers.Unread(sessionToken(r))
	}
	writeJSON(w, http.StatusOK, map[string]any{"unread": count, "known": ok})
}
