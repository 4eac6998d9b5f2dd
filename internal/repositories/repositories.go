// package repositories provides persistence layer implementations backed by SQLite.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// PutValues upserts every key/value pair into table within a single transaction.
//
// Either all pairs are written or none are.
func PutValues(ctx context.Context, db *sql.DB, table string, values map[string]string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, table)

	for key, value := range values {
		if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
			return fmt.Errorf("failed to store %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s transaction: %w", table, err)
	}
	return nil
}

// GetValues returns the rows of table whose key is one of keys. Missing keys are absent from the map.
func GetValues(ctx context.Context, db *sql.DB, table string, keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = ?", table)

	for _, key := range keys {
		var value string
		err := db.QueryRowContext(ctx, query, key).Scan(&value)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		values[key] = value
	}
	return values, nil
}

// DeleteValues removes the given keys from table. Deleting absent keys is not an error.
func DeleteValues(ctx context.Context, db *sql.DB, table string, keys ...string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("DELETE FROM %s WHERE key = ?", table)
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, query, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s transaction: %w", table, err)
	}
	return nil
}
