package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"sporthall/internal/adapters/remote"
	"sporthall/internal/domain/adminauth"
)

func TestExecuteLogin_Success(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := newMockSessionStore()
	pollers := newMockPollers()
	deps := LoginDeps{
		Credentials: newMockCredentialStore("secret1"),
		Sessions:    sessions,
		Pollers:     pollers,
		Now:         func() time.Time { return now },
	}

	s, err := ExecuteLogin(context.Background(), LoginInput{Username: "admin", Password: "secret1"}, deps)
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if !s.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Errorf("ExpiresAt = %v, want now+24h", s.ExpiresAt)
	}
	if len(s.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(s.Token))
	}
	if _, ok := sessions.sessions[s.Token]; !ok {
		t.Error("session was not stored")
	}
	if until, ok := pollers.started[s.Token]; !ok || !until.Equal(s.ExpiresAt) {
		t.Errorf("poller not started until expiry: %v %v", until, ok)
	}
}

// TestExecuteLogin_WrongPassword checks the auth error is distinguishable from a network failure.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	sessions := newMockSessionStore()
	pollers := newMockPollers()
	deps := LoginDeps{Credentials: newMockCredentialStore("secret1"), Sessions: sessions, Pollers: pollers}

	tests := []LoginInput{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "secret1"},
		{Username: "admin", Password: ""},
		{Username: "Admin", Password: "secret1"},
	}
	for _, in := range tests {
		_, err := ExecuteLogin(context.Background(), in, deps)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%+v: err = %v, want ErrInvalidCredentials", in, err)
		}
		var apiErr *remote.APIError
		if errors.As(err, &apiErr) {
			t.Errorf("%+v: auth failure looks like a network error", in)
		}
	}
	if sessions.sets != 0 || len(pollers.started) != 0 {
		t.Errorf("failed logins left state: sets=%d pollers=%d", sessions.sets, len(pollers.started))
	}
}

func TestExecuteRestoreSession_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := newMockSessionStore()
	stored := adminauth.Session{Token: "tok", ExpiresAt: now.Add(time.Hour)}
	sessions.sessions["tok"] = stored
	deps := RestoreSessionDeps{Sessions: sessions, Now: func() time.Time { return now }}

	for i := 0; i < 2; i++ {
		s, err := ExecuteRestoreSession(context.Background(), "tok", deps)
		if err != nil {
			t.Fatalf("restore %d: %v", i, err)
		}
		if !s.ExpiresAt.Equal(stored.ExpiresAt) {
			t.Errorf("restore %d changed ExpiresAt", i)
		}
	}
	if sessions.sets != 0 {
		t.Errorf("restore wrote the session %d times", sessions.sets)
	}
}

func TestExecuteRestoreSession_ExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		expiresAt time.Time
		wantErr   error
	}{
		{"in the future", now.Add(time.Millisecond), nil},
		{"exactly now", now, ErrSessionExpired},
		{"in the past", now.Add(-time.Millisecond), ErrSessionExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := newMockSessionStore()
			sessions.sessions["tok"] = adminauth.Session{Token: "tok", ExpiresAt: tt.expiresAt}
			pollers := newMockPollers()
			deps := RestoreSessionDeps{Sessions: sessions, Pollers: pollers, Now: func() time.Time { return now }}

			_, err := ExecuteRestoreSession(context.Background(), "tok", deps)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			_, stillStored := sessions.sessions["tok"]
			if tt.wantErr != nil && stillStored {
				t.Error("expired session was not deleted")
			}
			if tt.wantErr == nil && !stillStored {
				t.Error("valid session was deleted")
			}
		})
	}
}

func TestExecuteRestoreSession_Unknown(t *testing.T) {
	deps := RestoreSessionDeps{Sessions: newMockSessionStore()}
	if _, err := ExecuteRestoreSession(context.Background(), "", deps); !errors.Is(err, ErrNoSession) {
		t.Errorf("empty token: err = %v", err)
	}
	if _, err := ExecuteRestoreSession(context.Background(), "nope", deps); !errors.Is(err, ErrNoSession) {
		t.Errorf("unknown token: err = %v", err)
	}
}

type mockDrafts struct{ deleted []string }

func (m *mockDrafts) Delete(token string) { m.deleted = append(m.deleted, token) }

func TestExecuteLogout(t *testing.T) {
	sessions := newMockSessionStore()
	sessions.sessions["tok"] = adminauth.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	pollers := newMockPollers()
	pollers.started["tok"] = time.Now()
	drafts := &mockDrafts{}
	deps := LogoutDeps{Sessions: sessions, Drafts: drafts, Pollers: pollers}

	if err := ExecuteLogout(context.Background(), "tok", deps); err != nil {
		t.Fatalf("ExecuteLogout: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Error("session still stored")
	}
	if len(pollers.started) != 0 || len(pollers.stopped) != 1 {
		t.Error("poller not stopped")
	}
	if len(drafts.deleted) != 1 {
		t.Error("draft not discarded")
	}
	if err := ExecuteLogout(context.Background(), "tok", deps); err != nil {
		t.Errorf("second logout: %v", err)
	}
}
