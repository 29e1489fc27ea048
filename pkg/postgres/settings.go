package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetSetting reads a setting value by key, returning fallback when the
// key does not exist
func (s *store) GetSetting(ctx context.Context, key, fallback string) (string, error) {
	var value string
	err := s.q.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting %q: %w", key, err)
	}
	return value, nil
}

// UpdateSetting upserts a setting value
func (s *store) UpdateSetting(ctx context.Context, key, value string) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to update setting %q: %w", key, err)
	}
	return nil
}
