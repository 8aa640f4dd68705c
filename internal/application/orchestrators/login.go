package orchestrators

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sporthall/internal/adapters/storage/adminsession"
	"sporthall/internal/domain/adminauth"
)

// CredentialReader reads the stored admin credentials.
type CredentialReader interface {
	GetCredentials(ctx context.Context) (adminauth.Credentials, error)
}

// SessionStore is the admin session persistence used by the session orchestrators.
type SessionStore interface {
	Get(ctx context.Context, token string) (adminauth.Session, error)
	Set(ctx context.Context, session adminauth.Session) error
	Delete(ctx context.Context, token string) error
}

// PollerControl starts and stops the per-session unread-count poller.
type PollerControl interface {
	Start(token string, until time.Time)
	Stop(token string)
}

// DraftDiscarder drops a session's unsaved content draft.
type DraftDiscarder interface {
	Delete(token string)
}

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no admin session")
	ErrSessionExpired     = errors.New("admin session expired")
)

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Credentials CredentialReader
	Sessions    SessionStore
	Pollers     PollerControl // optional
	Now         func() time.Time
}

// ExecuteLogin checks the fixed username and the stored password, then persists a 24h session.
// There is no lockout or attempt counting.
// PRE: none
// POST: on success a session with ExpiresAt = now + 24h is stored and its poller started
// INVARIANT: a failed login leaves no session behind
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (adminauth.Session, error) {
	if input.Username != adminauth.Username || input.Password == "" {
		slog.Info("auth_event", "event", "login_failed", "reason", "bad_username_or_empty")
		return adminauth.Session{}, ErrInvalidCredentials
	}

	creds, err := deps.Credentials.GetCredentials(ctx)
	if err != nil {
		return adminauth.Session{}, fmt.Errorf("load credentials: %w", err)
	}
	if input.Password != creds.Password {
		slog.Info("auth_event", "event", "login_failed", "reason", "wrong_password")
		return adminauth.Session{}, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return adminauth.Session{}, fmt.Errorf("generate session token: %w", err)
	}
	session := adminauth.NewSession(token, nowFrom(deps.Now))
	if err := deps.Sessions.Set(ctx, session); err != nil {
		return adminauth.Session{}, fmt.Errorf("store session: %w", err)
	}
	if deps.Pollers != nil {
		deps.Pollers.Start(session.Token, session.ExpiresAt)
	}

	slog.Info("auth_event", "event", "login_success", "expires_at", session.ExpiresAt)
	return session, nil
}

// RestoreSessionDeps holds dependencies for RestoreSession.
type RestoreSessionDeps struct {
	Sessions SessionStore
	Pollers  PollerControl // optional
	Now      func() time.Time
}

// ExecuteRestoreSession turns a cookie token back into a session with a local clock check only.
// PRE: none
// POST: a valid session is returned unchanged; an expired one is deleted
// INVARIANT: ExpiresAt is never extended, so repeated restores are idempotent
func ExecuteRestoreSession(ctx context.Context, token string, deps RestoreSessionDeps) (adminauth.Session, error) {
	if token == "" {
		return adminauth.Session{}, ErrNoSession
	}
	session, err := deps.Sessions.Get(ctx, token)
	if errors.Is(err, adminsession.ErrNotFound) {
		return adminauth.Session{}, ErrNoSession
	}
	if err != nil {
		return adminauth.Session{}, fmt.Errorf("load session: %w", err)
	}

	if !session.ValidAt(nowFrom(deps.Now)) {
		if err := deps.Sessions.Delete(ctx, token); err != nil {
			slog.Error("session_delete_failed", "error", err)
		}
		if deps.Pollers != nil {
			deps.Pollers.Stop(token)
		}
		slog.Info("auth_event", "event", "session_expired")
		return adminauth.Session{}, ErrSessionExpired
	}

	if deps.Pollers != nil {
		deps.Pollers.Start(session.Token, session.ExpiresAt)
	}
	return session, nil
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionStore
	Drafts   DraftDiscarder // optional
	Pollers  PollerControl  // optional
}

// ExecuteLogout clears local session state. There is nothing to revoke remotely.
// POST: the session, its draft and its poller are gone; calling again is harmless
func ExecuteLogout(ctx context.Context, token string, deps LogoutDeps) error {
	if token == "" {
		return nil
	}
	if deps.Pollers != nil {
		deps.Pollers.Stop(token)
	}
	if deps.Drafts != nil {
		deps.Drafts.Delete(token)
	}
	if err := deps.Sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func nowFrom(f func() time.Time) time.Time {
	if f == nil {
		return time.Now()
	}
	return f()
}
