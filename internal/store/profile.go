package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Profile returns the stored display name, or "" if none was set. Reads
// never fail the caller over a missing row.
func (s *Store) Profile(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT full_name FROM profile WHERE id = 1`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	return name, nil
}

// SetProfile stores the display name used for the dashboard greeting.
func (s *Store) SetProfile(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile (id, full_name) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET full_name = excluded.full_name
	`, name)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
