package main

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sporthall/internal/adapters/email"
	web "sporthall/internal/adapters/http"
	"sporthall/internal/adapters/http/perf"
	"sporthall/internal/adapters/remote"
	"sporthall/internal/adapters/storage"
	adminsessionStore "sporthall/internal/adapters/storage/adminsession"
	captchaStore "sporthall/internal/adapters/storage/captcha"
	draftStore "sporthall/internal/adapters/storage/draft"
	partnerStore "sporthall/internal/adapters/storage/partner"
	settingsStore "sporthall/internal/adapters/storage/settings"
	"sporthall/internal/application/events"
	"sporthall/internal/application/orchestrators"
	"sporthall/internal/application/projections"
	"sporthall/internal/config"
	"sporthall/internal/domain/adminauth"
	"sporthall/internal/domain/document"
	"sporthall/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds how long in-flight requests may finish after a signal.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	logging.Setup(cmp.Or(cfg.LogLevel, os.Getenv("LOG_LEVEL")))
	if err != nil {
		logging.Fatal("config_invalid", "error", err)
	}

	ctx := context.Background()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		logging.Fatal("database_open_failed", "path", cfg.DBPath, "error", err)
	}
	defer db.Close()
	if err := storage.MigrateDB(ctx, db); err != nil {
		logging.Fatal("database_migrate_failed", "error", err)
	}
	schema, err := storage.SchemaVersion(ctx, db)
	if err != nil {
		slog.Warn("schema_version_unknown", "error", err)
	}

	// Performance instrumentation: local queries and hosted store calls share one collector.
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	settings := settingsStore.NewSQLiteStore(timedDB)
	if err := settings.Seed(ctx, adminauth.Credentials{
		Password:       cfg.AdminPassword,
		SecretQuestion: adminauth.DefaultSecretQuestion,
		SecretAnswer:   adminauth.DefaultSecretAnswer,
	}); err != nil {
		logging.Fatal("settings_seed_failed", "error", err)
	}
	sessions := adminsessionStore.NewSQLiteStore(timedDB)

	client := remote.NewHTTPClient(cfg.HTTPTimeout, perf.NewTransport(http.DefaultTransport, collector))
	feedbackClient := remote.NewFeedbackClient(cfg.FeedbackURL, cfg.FeedbackSubmitURL, client)

	stores := &web.Stores{
		Settings: settings,
		Sessions: sessions,
		Partners: partnerStore.NewSQLiteStore(timedDB),
		Captcha:  captchaStore.NewMemoryStore(captchaStore.DefaultTTL, nil),
		Drafts:   draftStore.NewMemoryStore(),
		Content:  remote.NewContentClient(cfg.ContentURL, client),
		Feedback: feedbackClient,
		Uploads:  remote.NewUploadClient(cfg.DocumentURL, cfg.ImageUploadURL, client),
	}

	var mailer email.Sender
	switch {
	case cfg.ResendKey != "" && cfg.NotifyTo != "":
		mailer = email.NewResendSender(cfg.ResendKey, cfg.ResendFrom)
		slog.Info("email_sender_configured", "provider", "resend")
	default:
		mailer = email.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("email_notifications_disabled", "reason", "SPORTHALL_RESEND_KEY or SPORTHALL_NOTIFY_TO unset")
		}
	}

	services := &web.Services{
		Cache:     projections.NewSiteCache(),
		Hub:       events.NewHub(),
		Pollers:   orchestrators.NewUnreadPollers(feedbackClient, cfg.PollInterval),
		DocStatus: document.NewStatusTracker(document.ResetDelay),
		Mailer:    mailer,
		NotifyTo:  cfg.NotifyTo,
	}

	handler, closeLimiter := web.NewMux(stores, services, collector, web.Options{
		CSRFKey:        cfg.CSRFKey,
		Production:     cfg.IsProduction(),
		TrustedOrigins: cfg.TrustedOrigins,
	})

	sweepStop := make(chan struct{})
	orchestrators.StartSessionSweeper(orchestrators.SweepSessionsDeps{Sessions: sessions}, orchestrators.DefaultSweepInterval, sweepStop)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "schema", schema)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server_failed", "error", err)
		}
	}()

	<-sigCtx.Done()
	slog.Info("server_stopping")

	// SSE streams never finish on their own, so the hub closes them before Shutdown waits.
	services.Hub.Close()
	services.Pollers.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server_shutdown_failed", "error", err)
	}

	close(sweepStop)
	services.DocStatus.Stop()
	closeLimiter()
	slog.Info("server_stopped")
}
