package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sporthall/internal/adapters/email"
	"sporthall/internal/domain/captcha"
	"sporthall/internal/domain/feedback"
)

// CaptchaTaker consumes an issued challenge.
type CaptchaTaker interface {
	Take(id string) (captcha.Challenge, bool)
}

// FeedbackSubmitter is the public side of the Feedback Store.
type FeedbackSubmitter interface {
	Submit(ctx context.Context, s feedback.Submission) error
}

var (
	ErrCaptchaMismatch = errors.New("captcha answer is wrong")
	ErrCaptchaExpired  = errors.New("captcha expired or already used")
)

// SubmitFeedbackInput carries the public form.
type SubmitFeedbackInput struct {
	Submission    feedback.Submission
	CaptchaID     string
	CaptchaAnswer string
}

// SubmitFeedbackDeps holds dependencies for SubmitFeedback.
type SubmitFeedbackDeps struct {
	Captcha  CaptchaTaker
	Feedback FeedbackSubmitter
	Mailer   email.Sender // optional
	NotifyTo string
}

// ExecuteSubmitFeedback checks the captcha, validates the form, posts it, then notifies the facility inbox.
// The challenge is consumed whatever the outcome, so the form always shows a fresh one.
// PRE: none
// POST: on success the message exists in the Feedback Store
// INVARIANT: a wrong captcha or an invalid form makes zero network calls
// INVARIANT: a failed notification never fails the submission
func ExecuteSubmitFeedback(ctx context.Context, input SubmitFeedbackInput, deps SubmitFeedbackDeps) error {
	challenge, ok := deps.Captcha.Take(input.CaptchaID)
	if !ok {
		return ErrCaptchaExpired
	}
	if !challenge.Check(input.CaptchaAnswer) {
		slog.Info("feedback_captcha_failed")
		return ErrCaptchaMismatch
	}

	sub := input.Submission.Normalize()
	if err := sub.Validate(); err != nil {
		return err
	}

	if err := deps.Feedback.Submit(ctx, sub); err != nil {
		slog.Error("feedback_submit_failed", "error", err)
		return fmt.Errorf("submit feedback: %w", err)
	}
	slog.Info("feedback_submitted")

	notifyFeedback(ctx, sub, deps)
	return nil
}

func notifyFeedback(ctx context.Context, sub feedback.Submission, deps SubmitFeedbackDeps) {
	if deps.Mailer == nil || deps.NotifyTo == "" {
		return
	}
	req, err := email.FeedbackNotification(deps.NotifyTo, sub)
	if err != nil {
		slog.Error("feedback_notify_failed", "error", err)
		return
	}
	if _, err := deps.Mailer.Send(ctx, req); err != nil {
		slog.Error("feedback_notify_failed", "error", err)
	}
}
