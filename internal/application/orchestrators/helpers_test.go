package orchestrators

import (
	"context"
	"sync"
	"testing"
	"time"

	"sporthall/internal/adapters/remote"
	"sporthall/internal/adapters/remote/remotetest"
	"sporthall/internal/adapters/storage/adminsession"
	"sporthall/internal/domain/adminauth"
)

// --- Mock credential store ---

type mockCredentialStore struct {
	creds adminauth.Credentials
	reads int
}

func newMockCredentialStore(password string) *mockCredentialStore {
	return &mockCredentialStore{creds: adminauth.Credentials{
		Password:       password,
		SecretQuestion: adminauth.DefaultSecretQuestion,
		SecretAnswer:   adminauth.DefaultSecretAnswer,
	}}
}

func (m *mockCredentialStore) GetCredentials(_ context.Context) (adminauth.Credentials, error) {
	m.reads++
	return m.creds, nil
}

func (m *mockCredentialStore) SetPassword(_ context.Context, password string) error {
	m.creds.Password = password
	return nil
}

func (m *mockCredentialStore) SetSecret(_ context.Context, question, answer string) error {
	m.creds.SecretQuestion = question
	m.creds.SecretAnswer = adminauth.NormalizeAnswer(answer)
	return nil
}

// --- Mock session store ---

type mockSessionStore struct {
	sessions map[string]adminauth.Session
	sets     int
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]adminauth.Session)}
}

func (m *mockSessionStore) Get(_ context.Context, token string) (adminauth.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return adminauth.Session{}, adminsession.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionStore) Set(_ context.Context, s adminauth.Session) error {
	m.sets++
	m.sessions[s.Token] = s
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

// --- Mock poller control ---

type mockPollers struct {
	mu      sync.Mutex
	started map[string]time.Time
	stopped []string
}

func newMockPollers() *mockPollers {
	return &mockPollers{started: make(map[string]time.Time)}
}

func (m *mockPollers) Start(token string, until time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started[token] = until
}

func (m *mockPollers) Stop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.started, token)
	m.stopped = append(m.stopped, token)
}

// --- Remote fake ---

type remoteClients struct {
	fake     *remotetest.Server
	content  *remote.ContentClient
	feedback *remote.FeedbackClient
	upload   *remote.UploadClient
}

func newRemote(t *testing.T) remoteClients {
	t.Helper()
	fake := remotetest.New(t)
	hc := fake.Client()
	return remoteClients{
		fake:     fake,
		content:  remote.NewContentClient(fake.ContentURL(), hc),
		feedback: remote.NewFeedbackClient(fake.FeedbackURL(), fake.SubmitURL(), hc),
		upload:   remote.NewUploadClient(fake.DocumentURL(), fake.ImageURL(), hc),
	}
}
