// Package vcp is the registry of VCP codes and their values.
//
// Codes and values are entries addressable by a canonical integer key or by
// any of their aliases. Aliases are folded (lower-cased, decomposed, reduced
// to [a-z0-9]) so "Input Select" and "input-select" name the same entry.
// Strings that parse as integers are always keys.
//
// A CodeStorage created with NewOverlay layers local changes over a shared
// reference table:
//   - reads fall through to the fallback when the overlay has no entry,
//   - writes materialize a local copy first, so the fallback never changes,
//   - removing a fallback entry records a tombstone in the overlay.
//
// Serialize writes the overlay as a document diffed against a reference
// table and Deserialize applies such a document, so only per-monitor
// changes are persisted.
//
// This package imports nothing internal except doc.
package vcp
