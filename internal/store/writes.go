package store

import (
	"context"
	"fmt"
)

// WriteRecord is one VCP write sent to a monitor.
type WriteRecord struct {
	ID        int64
	RunID     string
	MonitorID string
	Code      uint8
	Value     uint16
	Verified  bool
	Seq       int64
}

// WriteLog appends a record to the write log.
// Uses ON CONFLICT DO NOTHING for idempotency - a record with the same
// (run_id, seq) is silently ignored.
func (s *Store) WriteLog(ctx context.Context, rec WriteRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vcp_writes (run_id, monitor_id, code, value, verified, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		rec.RunID,
		rec.MonitorID,
		int64(rec.Code),
		int64(rec.Value),
		rec.Verified,
		rec.Seq,
	)
	if err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// ListWrites returns a monitor's writes ordered by seq ASC, id ASC.
//
// Returns an empty slice (not nil) if the monitor has no writes.
func (s *Store) ListWrites(ctx context.Context, monitorID string) ([]WriteRecord, error) {
	return s.queryWrites(ctx, `
		SELECT id, run_id, monitor_id, code, value, verified, seq
		FROM vcp_writes
		WHERE monitor_id = ?
		ORDER BY seq ASC, id ASC
	`, monitorID)
}

// ListRun returns the writes of one run ordered by seq ASC, id ASC.
//
// Returns an empty slice (not nil) if the run recorded no writes.
func (s *Store) ListRun(ctx context.Context, runID string) ([]WriteRecord, error) {
	return s.queryWrites(ctx, `
		SELECT id, run_id, monitor_id, code, value, verified, seq
		FROM vcp_writes
		WHERE run_id = ?
		ORDER BY seq ASC, id ASC
	`, runID)
}

func (s *Store) queryWrites(ctx context.Context, query string, arg string) ([]WriteRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query writes: %w", err)
	}
	defer rows.Close()

	records := []WriteRecord{}
	for rows.Next() {
		var rec WriteRecord
		var code, value int64
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.MonitorID, &code, &value, &rec.Verified, &rec.Seq); err != nil {
			return nil, fmt.Errorf("scan write: %w", err)
		}
		rec.Code = uint8(code)
		rec.Value = uint16(value)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate writes: %w", err)
	}
	return records, nil
}

// LastSeq returns the highest seq in the write log, or 0 when empty.
// Callers resume their logical clock from it.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM vcp_writes
	`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}
