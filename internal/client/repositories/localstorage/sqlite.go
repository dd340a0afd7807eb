package localstorage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the subset of database/sql used here. Both *sql.DB and *sql.Tx
// satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLiteRepository struct {
	db DBTX
}

func NewSQLiteRepository(db DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, origin, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM local_storage WHERE origin = ? AND key = ?`, origin, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s[%s]: %w", origin, key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, origin, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_storage (origin, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(origin, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, origin, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s[%s]: %w", origin, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, origin, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE origin = ? AND key = ?`, origin, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s[%s]: %w", origin, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Keys(ctx context.Context, origin string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM local_storage WHERE origin = ? ORDER BY key`, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", origin, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}
	return keys, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, origin string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE origin = ?`, origin)
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", origin, err)
	}
	return nil
}
