package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestWrite creates a write record with minimal required fields.
func createTestWrite(runID, monitorID string, code uint8, value uint16, seq int64) WriteRecord {
	return WriteRecord{
		RunID:     runID,
		MonitorID: monitorID,
		Code:      code,
		Value:     value,
		Seq:       seq,
	}
}
