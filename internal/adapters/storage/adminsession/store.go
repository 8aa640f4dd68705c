package adminsession

import (
	"context"
	"errors"
	"time"

	domain "sporthall/internal/domain/adminauth"
)

// ErrNotFound means no session exists for the token.
var ErrNotFound = errors.New("admin session not found")

// Store persists admin sessions. Get, Set and Delete are the only mutation points for session state.
type Store interface {
	Get(ctx context.Context, token string) (domain.Session, error)
	Set(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
