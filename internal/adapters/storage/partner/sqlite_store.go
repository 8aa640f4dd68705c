package partner

import (
	"context"
	"fmt"

	"sporthall/internal/adapters/storage"
	domain "sporthall/internal/domain/partner"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new partner store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns partners in saved order.
// POST: never nil
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Partner, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, url FROM partner ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	out := []domain.Partner{}
	for rows.Next() {
		var p domain.Partner
		if err := rows.Scan(&p.Name, &p.URL); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the whole list atomically.
// PRE: partners passed domain.ValidateAll
// INVARIANT: readers see either the old or the new list, never a mix
func (s *SQLiteStore) ReplaceAll(ctx context.Context, partners []domain.Partner) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM partner`); err != nil {
		return fmt.Errorf("clear partners: %w", err)
	}
	for i, p := range partners {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO partner (position, name, url) VALUES (?, ?, ?)
		`, i, p.Name, p.URL); err != nil {
			return fmt.Errorf("insert partner %d: %w", i, err)
		}
	}
	return tx.Commit()
}
