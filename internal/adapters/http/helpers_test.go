package web

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sporthall/internal/adapters/email"
	"sporthall/internal/adapters/http/middleware"
	"sporthall/internal/adapters/remote"
	"sporthall/internal/adapters/remote/remotetest"
	"sporthall/internal/adapters/storage"
	adminsessionStore "sporthall/internal/adapters/storage/adminsession"
	captchaStore "sporthall/internal/adapters/storage/captcha"
	draftStore "sporthall/internal/adapters/storage/draft"
	partnerStore "sporthall/internal/adapters/storage/partner"
	settingsStore "sporthall/internal/adapters/storage/settings"
	"sporthall/internal/application/events"
	"sporthall/internal/application/projections"
	"sporthall/internal/domain/adminauth"
	captchaDomain "sporthall/internal/domain/captcha"
	"sporthall/internal/domain/document"
)

const testPassword = "secret1"

type testEnv struct {
	fake    *remotetest.Server
	mailer  *email.NoopSender
	captcha *captchaStore.MemoryStore
	mux     *http.ServeMux
}

// setupTest wires the package globals against a fake remote and an in-memory database.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.MigrateDB(ctx, db))

	settings := settingsStore.NewSQLiteStore(db)
	require.NoError(t, settings.Seed(ctx, adminauth.Credentials{
		Password:       testPassword,
		SecretQuestion: adminauth.DefaultSecretQuestion,
		SecretAnswer:   adminauth.DefaultSecretAnswer,
	}))

	fake := remotetest.New(t)
	client := fake.Client()
	captcha := captchaStore.NewMemoryStore(captchaStore.DefaultTTL, captchaDomain.DefaultSource)
	mailer := email.NewNoopSender()

	stores = &Stores{
		Settings: settings,
		Sessions: adminsessionStore.NewSQLiteStore(db),
		Partners: partnerStore.NewSQLiteStore(db),
		Captcha:  captcha,
		Drafts:   draftStore.NewMemoryStore(),
		Content:  remote.NewContentClient(fake.ContentURL(), client),
		Feedback: remote.NewFeedbackClient(fake.FeedbackURL(), fake.SubmitURL(), client),
		Uploads:  remote.NewUploadClient(fake.DocumentURL(), fake.ImageURL(), client),
	}
	services = &Services{
		Cache:     projections.NewSiteCache(),
		Hub:       events.NewHub(),
		DocStatus: document.NewStatusTracker(time.Hour),
		Mailer:    mailer,
		NotifyTo:  "hall@example.com",
	}
	t.Cleanup(func() {
		services.Hub.Close()
		services.DocStatus.Stop()
	})

	mux := http.NewServeMux()
	registerRoutes(mux)
	return &testEnv{fake: fake, mailer: mailer, captcha: captcha, mux: mux}
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

var testSession = adminauth.Session{Token: "test-session-token", ExpiresAt: time.Now().Add(adminauth.SessionTTL)}

// asAdmin attaches an admin session to req.
func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(middleware.ContextWithSession(req.Context(), testSession))
}

// multipartRequest builds a single-file upload with an explicit part content type.
func multipartRequest(t *testing.T, target, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// location parses the redirect target of rec.
func location(t *testing.T, rec *httptest.ResponseRecorder) *url.URL {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, "body: %s", rec.Body.String())
	u, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return u
}
