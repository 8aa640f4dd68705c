package web

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"sporthall/internal/adapters/email"
	"sporthall/internal/adapters/http/middleware"
	"sporthall/internal/adapters/http/perf"
	"sporthall/internal/adapters/remote"
	adminsessionStore "sporthall/internal/adapters/storage/adminsession"
	captchaStore "sporthall/internal/adapters/storage/captcha"
	draftStore "sporthall/internal/adapters/storage/draft"
	partnerStore "sporthall/internal/adapters/storage/partner"
	settingsStore "sporthall/internal/adapters/storage/settings"
	"sporthall/internal/application/events"
	"sporthall/internal/application/orchestrators"
	"sporthall/internal/application/projections"
	"sporthall/internal/domain/adminauth"
	"sporthall/internal/domain/document"
)

// Stores holds all storage dependencies, local and hosted.
type Stores struct {
	Settings settingsStore.Store
	Sessions adminsessionStore.Store
	Partners partnerStore.Store
	Captcha  captchaStore.Store
	Drafts   draftStore.Store

	Content  *remote.ContentClient
	Feedback *remote.FeedbackClient
	Uploads  *remote.UploadClient
}

// Services holds the long-lived in-process collaborators.
type Services struct {
	Cache     *projections.SiteCache
	Hub       *events.Hub
	Pollers   *orchestrators.UnreadPollers
	DocStatus *document.StatusTracker
	Mailer    email.Sender
	NotifyTo  string
}

// Options configure NewMux.
type Options struct {
	// CSRFKey is 32 bytes. Nil generates a random key per startup.
	CSRFKey        []byte
	Production     bool
	TrustedOrigins []string
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global services instance (set by NewMux)
var services *Services

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// timeNow is a variable for testability.
var timeNow = time.Now

// csrfKeyOrRandom returns key, or a fresh random key when none was configured.
// Production config refuses to start without a key, so the random path is development only.
func csrfKeyOrRandom(key []byte) []byte {
	if len(key) == 32 {
		return key
	}
	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("generate csrf key: " + err.Error())
	}
	slog.Warn("csrf_key_random", "hint", "set SPORTHALL_CSRF_KEY so forms survive a restart")
	return key
}

// restoreSession is the cookie resolver used by the Auth middleware.
func restoreSession(ctx context.Context, token string) (adminauth.Session, error) {
	return orchestrators.ExecuteRestoreSession(ctx, token, orchestrators.RestoreSessionDeps{
		Sessions: stores.Sessions,
		Pollers:  pollerControl(),
		Now:      timeNow,
	})
}

// pollerControl returns the unread pollers as an interface, nil when not configured.
func pollerControl() orchestrators.PollerControl {
	if services == nil || services.Pollers == nil {
		return nil
	}
	return services.Pollers
}

// NewMux wires HTTP handlers for the app.
// The returned close func stops the rate limiter sweep.
func NewMux(s *Stores, svc *Services, collector *perf.Collector, opts Options) (http.Handler, func()) {
	stores = s
	services = svc
	perfCollector = collector
	middleware.SecureCookies = opts.Production

	mux := http.NewServeMux()
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	handler := middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKeyOrRandom(opts.CSRFKey), middleware.CSRFOptions{
			Secure:         opts.Production,
			TrustedOrigins: opts.TrustedOrigins,
		}),
		middleware.Auth(restoreSession),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, middleware.DefaultSlowRequest),
	)
	return handler, limiter.Close
}
