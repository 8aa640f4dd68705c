package adminsession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sporthall/internal/adapters/storage"
	domain "sporthall/internal/domain/adminauth"
)

// SQLiteStore implements Store using SQLite. Expiry is stored as epoch milliseconds.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the stored session for token, expired or not.
// POST: returns ErrNotFound when absent
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) Get(ctx context.Context, token string) (domain.Session, error) {
	var ms int64
	err := s.db.QueryRowContext(ctx, `
		SELECT expires_at FROM admin_session WHERE token = ?
	`, token).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return domain.Session{Token: token, ExpiresAt: time.UnixMilli(ms).UTC()}, nil
}

// Set inserts or replaces a session.
// PRE: session.Token is non-empty
func (s *SQLiteStore) Set(ctx context.Context, session domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_session (token, expires_at, created_at) VALUES (?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET expires_at = excluded.expires_at
	`, session.Token, session.ExpiresAtMillis(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM admin_session WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session with expires_at <= now and reports how many went.
func (s *SQLiteStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM admin_session WHERE expires_at <= ?`, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
