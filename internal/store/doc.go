// Package store provides SQLite-backed storage for per-monitor code
// overrides and the VCP write log.
//
// Overrides are stored as the YAML diff between a monitor's code table and
// the MCCS table, one row per monitor, with a revision counter bumped on
// every save.
//
// Writes are append-only. Ordering uses the logical seq column, never wall
// time: every query over vcp_writes orders by seq ASC, id ASC.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
