// Package config loads runtime settings from SPORTHALL_* environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env values.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Defaults applied when a variable is unset.
const (
	DefaultAddr         = ":8080"
	DefaultDBPath       = "sporthall.db"
	DefaultHTTPTimeout  = 15 * time.Second
	DefaultPollInterval = 30 * time.Second
	DefaultResendFrom   = "Спортзал Енисей <noreply@sporthall.example>"
	DefaultLogLevel     = "INFO"

	// DefaultAdminPassword seeds a development database only.
	DefaultAdminPassword = "enisey2024"
)

// ErrMissing is wrapped by FromEnv for every required variable that is empty.
var ErrMissing = errors.New("required variable is empty")

// Config is the full process configuration.
type Config struct {
	Addr   string
	Env    string
	DBPath string

	// CSRFKey is 32 raw bytes decoded from SPORTHALL_CSRF_KEY. Nil means generate at startup.
	CSRFKey []byte

	ContentURL        string
	FeedbackURL       string
	FeedbackSubmitURL string
	DocumentURL       string
	ImageUploadURL    string

	HTTPTimeout  time.Duration
	PollInterval time.Duration

	AdminPassword string

	// TrustedOrigins are extra hosts allowed to post forms, e.g. behind a proxy.
	TrustedOrigins []string
	LogLevel       string

	ResendKey  string
	ResendFrom string
	NotifyTo   string
}

// IsProduction reports whether SPORTHALL_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads an optional .env file then the environment.
// A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
// PRE: getenv is non-nil
// POST: returns an error naming every missing store URL, or a bad duration/key
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }
	or := func(key, fallback string) string {
		if v := get(key); v != "" {
			return v
		}
		return fallback
	}

	c := Config{
		Addr:              or("SPORTHALL_ADDR", DefaultAddr),
		Env:               or("SPORTHALL_ENV", EnvDevelopment),
		DBPath:            or("SPORTHALL_DB_PATH", DefaultDBPath),
		ContentURL:        get("SPORTHALL_CONTENT_URL"),
		FeedbackURL:       get("SPORTHALL_FEEDBACK_URL"),
		FeedbackSubmitURL: get("SPORTHALL_FEEDBACK_SUBMIT_URL"),
		DocumentURL:       get("SPORTHALL_DOCUMENT_URL"),
		ImageUploadURL:    get("SPORTHALL_IMAGE_UPLOAD_URL"),
		AdminPassword:     get("SPORTHALL_ADMIN_PASSWORD"),
		ResendKey:         get("SPORTHALL_RESEND_KEY"),
		ResendFrom:        or("SPORTHALL_RESEND_FROM", DefaultResendFrom),
		NotifyTo:          get("SPORTHALL_NOTIFY_TO"),
		TrustedOrigins:    splitList(get("SPORTHALL_TRUSTED_ORIGINS")),
		LogLevel:          or("LOG_LEVEL", DefaultLogLevel),
	}

	var errs []error
	for key, val := range map[string]string{
		"SPORTHALL_CONTENT_URL":         c.ContentURL,
		"SPORTHALL_FEEDBACK_URL":        c.FeedbackURL,
		"SPORTHALL_FEEDBACK_SUBMIT_URL": c.FeedbackSubmitURL,
		"SPORTHALL_DOCUMENT_URL":        c.DocumentURL,
		"SPORTHALL_IMAGE_UPLOAD_URL":    c.ImageUploadURL,
	} {
		if val == "" {
			errs = append(errs, fmt.Errorf("%s: %w", key, ErrMissing))
		}
	}

	var err error
	if c.HTTPTimeout, err = parseDuration(get("SPORTHALL_HTTP_TIMEOUT"), DefaultHTTPTimeout); err != nil {
		errs = append(errs, fmt.Errorf("SPORTHALL_HTTP_TIMEOUT: %w", err))
	}
	if c.PollInterval, err = parseDuration(get("SPORTHALL_POLL_INTERVAL"), DefaultPollInterval); err != nil {
		errs = append(errs, fmt.Errorf("SPORTHALL_POLL_INTERVAL: %w", err))
	}

	if raw := get("SPORTHALL_CSRF_KEY"); raw != "" {
		key, err := hex.DecodeString(raw)
		if err != nil || len(key) != 32 {
			errs = append(errs, errors.New("SPORTHALL_CSRF_KEY: must be 64 hex characters"))
		} else {
			c.CSRFKey = key
		}
	} else if c.IsProduction() {
		errs = append(errs, fmt.Errorf("SPORTHALL_CSRF_KEY: %w", ErrMissing))
	}

	if c.AdminPassword == "" {
		if c.IsProduction() {
			errs = append(errs, fmt.Errorf("SPORTHALL_ADMIN_PASSWORD: %w", ErrMissing))
		} else {
			c.AdminPassword = DefaultAdminPassword
		}
	}

	return c, errors.Join(errs...)
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
