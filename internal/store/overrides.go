package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/vcpctl/internal/doc"
)

// SaveOverrides stores the override document for a monitor, replacing any
// previous one and bumping its revision. A nil document deletes the row.
func (s *Store) SaveOverrides(ctx context.Context, monitorID string, d doc.Value) error {
	if d == nil {
		return s.DeleteOverrides(ctx, monitorID)
	}

	text, err := doc.Marshal(d)
	if err != nil {
		return fmt.Errorf("save overrides: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO monitor_overrides (monitor_id, document, revision)
		VALUES (?, ?, 1)
		ON CONFLICT(monitor_id) DO UPDATE SET
			document = excluded.document,
			revision = monitor_overrides.revision + 1
	`, monitorID, string(text))
	if err != nil {
		return fmt.Errorf("save overrides: %w", err)
	}
	return nil
}

// LoadOverrides returns the stored document for a monitor. The boolean is
// false when nothing has been saved.
func (s *Store) LoadOverrides(ctx context.Context, monitorID string) (doc.Value, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `
		SELECT document FROM monitor_overrides WHERE monitor_id = ?
	`, monitorID).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load overrides: %w", err)
	}

	d, err := doc.Unmarshal([]byte(text))
	if err != nil {
		return nil, false, fmt.Errorf("load overrides for %s: %w", monitorID, err)
	}
	return d, true, nil
}

// OverridesRevision returns how many times a monitor's overrides have been
// saved since they were last deleted, or 0.
func (s *Store) OverridesRevision(ctx context.Context, monitorID string) (int64, error) {
	var rev int64
	err := s.db.QueryRowContext(ctx, `
		SELECT revision FROM monitor_overrides WHERE monitor_id = ?
	`, monitorID).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("overrides revision: %w", err)
	}
	return rev, nil
}

// DeleteOverrides removes a monitor's overrides. Deleting a missing row is
// not an error.
func (s *Store) DeleteOverrides(ctx context.Context, monitorID string) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM monitor_overrides WHERE monitor_id = ?
	`, monitorID); err != nil {
		return fmt.Errorf("delete overrides: %w", err)
	}
	return nil
}

// ListMonitors returns the ids of monitors with stored overrides, sorted.
func (s *Store) ListMonitors(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT monitor_id FROM monitor_overrides ORDER BY monitor_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query monitors: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan monitor: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monitors: %w", err)
	}
	return ids, nil
}
