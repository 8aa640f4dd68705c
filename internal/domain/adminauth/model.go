package adminauth

import (
	"errors"
	"strings"
	"time"
)

// Username is the only login accepted by the admin panel.
const Username = "admin"

// SessionTTL is how long a successful login stays valid.
const SessionTTL = 24 * time.Hour

// MinPasswordLength is enforced by the password change form.
const MinPasswordLength = 6

// Seeded credential defaults, used when no value has been stored yet.
const (
	DefaultSecretQuestion = "Как называется спортивный зал?"
	DefaultSecretAnswer   = "енисей"
)

// Domain errors
var (
	ErrPasswordTooShort  = errors.New("new password must be at least 6 characters")
	ErrPasswordMismatch  = errors.New("new password and confirmation do not match")
	ErrPasswordUnchanged = errors.New("new password must differ from the current one")
	ErrEmptySecret       = errors.New("secret question and answer are required")
)

// Session is the persisted admin session. Presence plus non-expiry means authenticated.
// There is no server-side revocation beyond deleting the record.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// NewSession builds a session that expires SessionTTL after now.
// PRE: token is non-empty
// POST: ExpiresAt == now + SessionTTL
func NewSession(token string, now time.Time) Session {
	return Session{Token: token, ExpiresAt: now.Add(SessionTTL)}
}

// ValidAt reports whether the session authenticates at the given instant.
// A session expiring exactly at now is already invalid.
// INVARIANT: Session fields are not mutated
func (s Session) ValidAt(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

// ExpiresAtMillis returns the expiry as epoch milliseconds, the stored representation.
func (s Session) ExpiresAtMillis() int64 {
	return s.ExpiresAt.UnixMilli()
}

// Credentials hold the admin password and the recovery secret.
// Values are kept and compared in plaintext; see DESIGN.md.
type Credentials struct {
	Password       string
	SecretQuestion string
	SecretAnswer   string
}

// NormalizeAnswer lower-cases and trims a secret answer for storage and comparison.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// AnswerMatches compares a recovery answer against the stored one, ignoring case and surrounding space.
// INVARIANT: Credentials are not mutated
func (c Credentials) AnswerMatches(answer string) bool {
	return NormalizeAnswer(answer) == NormalizeAnswer(c.SecretAnswer)
}

// ValidateNewPassword applies the password form rules before any store is touched.
// PRE: none
// POST: returns nil when newPassword is long enough, confirmed, and differs from current
func ValidateNewPassword(current, newPassword, confirm string) error {
	if len([]rune(newPassword)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if current == newPassword {
		return ErrPasswordUnchanged
	}
	return nil
}

// ValidateSecret checks the secret question form.
func ValidateSecret(question, answer string) error {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return ErrEmptySecret
	}
	return nil
}
