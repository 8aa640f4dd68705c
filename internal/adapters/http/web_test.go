package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sporthall/internal/adapters/http/middleware"
)

var csrfMeta = regexp.MustCompile(`name="csrf-token" content="([^"]+)"`)

// newTestServer serves the full middleware chain over a real listener.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	setupTest(t)
	handler, closeLimiter := NewMux(stores, services, nil, Options{})
	t.Cleanup(closeLimiter)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func pageToken(t *testing.T, client *http.Client, target string) string {
	t.Helper()
	resp, err := client.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	m := csrfMeta.FindSubmatch(body)
	require.NotNil(t, m, "no csrf meta tag on %s", target)
	return string(m[1])
}

func TestNewMux_SecurityHeaders(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "youtube-nocookie.com")
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestNewMux_FormWithoutTokenIsForbidden(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.PostForm(srv.URL+"/admin/login", url.Values{"username": {"admin"}, "password": {testPassword}})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestNewMux_LoginRoundTrip(t *testing.T) {
	srv, client := newTestServer(t)

	token := pageToken(t, client, srv.URL+"/admin/login")
	resp, err := client.PostForm(srv.URL+"/admin/login", url.Values{
		"username":           {"admin"},
		"password":           {testPassword},
		"gorilla.csrf.Token": {token},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	resp, err = client.Get(srv.URL + "/admin?tab=sports")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Баскетбол")
}
