package orchestrators

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sporthall/internal/adapters/email"
	"sporthall/internal/adapters/remote"
	"sporthall/internal/adapters/remote/remotetest"
	"sporthall/internal/application/projections"
	"sporthall/internal/domain/captcha"
	"sporthall/internal/domain/feedback"
)

type fixedCaptcha struct {
	challenge captcha.Challenge
	taken     bool
}

func (f *fixedCaptcha) Take(id string) (captcha.Challenge, bool) {
	if f.taken || id != f.challenge.ID {
		return captcha.Challenge{}, false
	}
	f.taken = true
	return f.challenge, true
}

func newFixedCaptcha() *fixedCaptcha {
	return &fixedCaptcha{challenge: captcha.Challenge{ID: "c1", Num1: 4, Num2: 7}}
}

type failingSender struct{}

func (failingSender) Send(context.Context, email.SendRequest) (email.SendResult, error) {
	return email.SendResult{}, errors.New("smtp down")
}

func inboxRefresh(rc remoteClients) func(context.Context) feedback.Inbox {
	return func(ctx context.Context) feedback.Inbox {
		return projections.GetFeedbackInbox(ctx, projections.GetFeedbackInboxDeps{Feedback: rc.feedback})
	}
}

// TestSubmitThenList: a correct submission shows up unread and unarchived.
func TestSubmitThenList(t *testing.T) {
	rc := newRemote(t)
	mailer := email.NewNoopSender()
	deps := SubmitFeedbackDeps{Captcha: newFixedCaptcha(), Feedback: rc.feedback, Mailer: mailer, NotifyTo: "hall@example.ru"}

	err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
		Submission:    feedback.Submission{Name: "A", Email: "a@b.com", Message: "hi"},
		CaptchaID:     "c1",
		CaptchaAnswer: "11",
	}, deps)
	require.NoError(t, err)

	listing, err := rc.feedback.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, listing.Feedback, 1)
	m := listing.Feedback[0]
	assert.Equal(t, "A", m.Name)
	assert.False(t, m.IsRead)
	assert.False(t, m.IsArchived)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@b.com", sent[0].ReplyTo)
}

func TestExecuteSubmitFeedback_CaptchaGate(t *testing.T) {
	rc := newRemote(t)
	for a := captcha.MinOperand; a <= captcha.MaxOperand; a++ {
		for b := captcha.MinOperand; b <= captcha.MaxOperand; b++ {
			for _, answer := range []int{a + b, a + b + 1, a + b - 1} {
				deps := SubmitFeedbackDeps{
					Captcha:  &fixedCaptcha{challenge: captcha.Challenge{ID: "c", Num1: a, Num2: b}},
					Feedback: rc.feedback,
				}
				before := rc.fake.TotalCalls()
				err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
					Submission:    feedback.Submission{Name: "A", Email: "a@b.com", Message: "hi"},
					CaptchaID:     "c",
					CaptchaAnswer: strconv.Itoa(answer),
				}, deps)
				if answer == a+b {
					require.NoError(t, err)
					require.Equal(t, before+1, rc.fake.TotalCalls())
				} else {
					require.ErrorIs(t, err, ErrCaptchaMismatch)
					require.Equal(t, before, rc.fake.TotalCalls(), "%d+%d answered %d", a, b, answer)
				}
			}
		}
	}
}

func TestExecuteSubmitFeedback_LocalRejections(t *testing.T) {
	rc := newRemote(t)
	ctx := context.Background()

	cap1 := newFixedCaptcha()
	err := ExecuteSubmitFeedback(ctx, SubmitFeedbackInput{Submission: feedback.Submission{Email: "a@b.com", Message: "hi"}, CaptchaID: "c1", CaptchaAnswer: "11"},
		SubmitFeedbackDeps{Captcha: cap1, Feedback: rc.feedback})
	assert.ErrorIs(t, err, feedback.ErrEmptyName)

	// The challenge was consumed by the failed attempt.
	err = ExecuteSubmitFeedback(ctx, SubmitFeedbackInput{Submission: feedback.Submission{Name: "A", Email: "a@b.com", Message: "hi"}, CaptchaID: "c1", CaptchaAnswer: "11"},
		SubmitFeedbackDeps{Captcha: cap1, Feedback: rc.feedback})
	assert.ErrorIs(t, err, ErrCaptchaExpired)

	assert.Equal(t, 0, rc.fake.TotalCalls())
}

func TestExecuteSubmitFeedback_ServerMessageAndNotifyFailure(t *testing.T) {
	rc := newRemote(t)
	ctx := context.Background()
	in := SubmitFeedbackInput{Submission: feedback.Submission{Name: "A", Email: "a@b.com", Message: "hi"}, CaptchaID: "c1", CaptchaAnswer: "11"}

	rc.fake.Fail(remotetest.RouteSubmit, http.StatusBadRequest, "Name and email are required")
	err := ExecuteSubmitFeedback(ctx, in, SubmitFeedbackDeps{Captcha: newFixedCaptcha(), Feedback: rc.feedback})
	require.Error(t, err)
	msg, ok := remote.ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Name and email are required", msg)

	rc.fake.Recover(remotetest.RouteSubmit)
	err = ExecuteSubmitFeedback(ctx, in, SubmitFeedbackDeps{Captcha: newFixedCaptcha(), Feedback: rc.feedback, Mailer: failingSender{}, NotifyTo: "hall@example.ru"})
	assert.NoError(t, err, "notification failure must not fail the submission")
}

// TestModerate_MarkReadDecrementsUnread: marking one message read drops unread_count by exactly one.
func TestModerate_MarkReadDecrementsUnread(t *testing.T) {
	rc := newRemote(t)
	ctx := context.Background()
	id := rc.fake.AddMessage(feedback.Message{Name: "A", Email: "a@b.com", Message: "1"})
	rc.fake.AddMessage(feedback.Message{Name: "B", Email: "b@b.com", Message: "2"})

	before, err := rc.feedback.List(ctx, false)
	require.NoError(t, err)

	inbox, err := ExecuteModerateFeedback(ctx, ModerateFeedbackInput{ID: id, Op: feedback.OpMarkRead},
		ModerateFeedbackDeps{Feedback: rc.feedback, Refresh: inboxRefresh(rc)})
	require.NoError(t, err)

	loaded, ok := inbox.(feedback.InboxLoaded)
	require.True(t, ok, "inbox = %T", inbox)
	_, unread, _ := loaded.Counts()
	assert.Equal(t, before.UnreadCount-1, unread)
	for _, m := range loaded.Combined() {
		if m.ID == id {
			assert.True(t, m.IsRead)
		}
	}
}

func TestModerate_ArchiveUnarchiveDelete(t *testing.T) {
	rc := newRemote(t)
	ctx := context.Background()
	id := rc.fake.AddMessage(feedback.Message{Name: "A", Email: "a@b.com", Message: "1"})
	deps := ModerateFeedbackDeps{Feedback: rc.feedback, Refresh: inboxRefresh(rc)}

	_, err := ExecuteModerateFeedback(ctx, ModerateFeedbackInput{ID: id, Op: feedback.OpArchive}, deps)
	require.NoError(t, err)
	archived, err := rc.feedback.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, archived.Feedback, 1)

	_, err = ExecuteModerateFeedback(ctx, ModerateFeedbackInput{ID: id, Op: feedback.OpUnarchive}, deps)
	require.NoError(t, err)
	active, err := rc.feedback.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active.Feedback, 1)

	_, err = ExecuteModerateFeedback(ctx, ModerateFeedbackInput{ID: id, Op: feedback.OpDelete}, deps)
	require.NoError(t, err)
	assert.Empty(t, rc.fake.Messages())
}

func TestModerate_FailureDoesNotRefresh(t *testing.T) {
	rc := newRemote(t)
	refreshed := false
	deps := ModerateFeedbackDeps{
		Feedback: rc.feedback,
		Refresh:  func(context.Context) feedback.Inbox { refreshed = true; return feedback.InboxLoading{} },
	}

	rc.fake.Fail(remotetest.RouteFeedback, http.StatusInternalServerError, "")
	_, err := ExecuteModerateFeedback(context.Background(), ModerateFeedbackInput{ID: 1, Op: feedback.OpArchive}, deps)
	require.Error(t, err)
	assert.False(t, refreshed)

	_, err = ExecuteModerateFeedback(context.Background(), ModerateFeedbackInput{ID: 0, Op: feedback.OpArchive}, deps)
	assert.ErrorIs(t, err, ErrInvalidFeedbackID)
	_, err = ExecuteModerateFeedback(context.Background(), ModerateFeedbackInput{ID: 1, Op: "spam"}, deps)
	assert.ErrorIs(t, err, feedback.ErrUnknownOperation)
}
