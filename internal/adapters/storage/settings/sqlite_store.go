package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sporthall/internal/adapters/storage"
	domain "sporthall/internal/domain/adminauth"
)

// ErrNotSeeded means GetCredentials found no password row.
var ErrNotSeeded = errors.New("admin credentials not seeded")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new settings store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetCredentials reads password, secret question and secret answer.
// PRE: Seed has run
// POST: returns ErrNotSeeded when no password is stored
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) GetCredentials(ctx context.Context) (domain.Credentials, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM settings WHERE key IN (?, ?, ?)
	`, KeyAdminPassword, KeySecretQuestion, KeySecretAnswer)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	defer rows.Close()

	var c domain.Credentials
	found := false
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Credentials{}, err
		}
		switch key {
		case KeyAdminPassword:
			c.Password = value
			found = true
		case KeySecretQuestion:
			c.SecretQuestion = value
		case KeySecretAnswer:
			c.SecretAnswer = value
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Credentials{}, err
	}
	if !found {
		return domain.Credentials{}, ErrNotSeeded
	}
	return c, nil
}

// SetPassword overwrites the stored password.
// PRE: password passed domain validation
// POST: subsequent GetCredentials returns the new password
func (s *SQLiteStore) SetPassword(ctx context.Context, password string) error {
	return s.put(ctx, map[string]string{KeyAdminPassword: password})
}

// SetSecret overwrites the question and the normalized answer together.
// POST: the stored answer is lower-cased and trimmed
func (s *SQLiteStore) SetSecret(ctx context.Context, question, answer string) error {
	return s.put(ctx, map[string]string{
		KeySecretQuestion: question,
		KeySecretAnswer:   domain.NormalizeAnswer(answer),
	})
}

// Seed stores defaults for every key that has no value yet. Existing values are kept.
// INVARIANT: never overwrites a changed password
func (s *SQLiteStore) Seed(ctx context.Context, defaults domain.Credentials) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for key, value := range map[string]string{
		KeyAdminPassword:  defaults.Password,
		KeySecretQuestion: defaults.SecretQuestion,
		KeySecretAnswer:   domain.NormalizeAnswer(defaults.SecretAnswer),
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO NOTHING
		`, key, value, now); err != nil {
			return fmt.Errorf("seed %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) put(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, now); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return tx.Commit()
}
