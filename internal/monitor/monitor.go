// Package monitor binds a monitor filter to a device backend and a code
// registry. Each monitor reads codes through its own overlay of the shared
// MCCS table, so per-monitor renames, restrictions and capability pruning
// never leak into other monitors.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/roach88/vcpctl/internal/batch"
	"github.com/roach88/vcpctl/internal/capabilities"
	"github.com/roach88/vcpctl/internal/ddc"
	"github.com/roach88/vcpctl/internal/doc"
	"github.com/roach88/vcpctl/internal/schema"
	"github.com/roach88/vcpctl/internal/store"
	"github.com/roach88/vcpctl/internal/vcp"
)

// ErrVerifyFailed is returned when a value read back after a write differs
// from the value written.
var ErrVerifyFailed = errors.New("write verification failed")

// OverrideStore persists a monitor's override document.
type OverrideStore interface {
	LoadOverrides(ctx context.Context, monitorID string) (doc.Value, bool, error)
	SaveOverrides(ctx context.Context, monitorID string, d doc.Value) error
	DeleteOverrides(ctx context.Context, monitorID string) error
}

// Journal records VCP writes.
type Journal interface {
	WriteLog(ctx context.Context, rec store.WriteRecord) error
}

// Monitor is a monitor selected by a filter. The connected monitor is
// looked up on first use.
type Monitor struct {
	filter  Filter
	backend ddc.Backend
	spec    *vcp.CodeStorage
	store   OverrideStore
	journal Journal
	clock   *batch.Clock
	logger  *slog.Logger

	mu    sync.Mutex
	info  *ddc.Info
	codes *vcp.CodeStorage
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithStore persists the monitor's code table.
func WithStore(s OverrideStore) Option {
	return func(m *Monitor) { m.store = s }
}

// WithJournal records every write.
func WithJournal(j Journal) Option {
	return func(m *Monitor) { m.journal = j }
}

// WithClock stamps journal records. Without one, a fresh clock is used.
func WithClock(c *batch.Clock) Option {
	return func(m *Monitor) { m.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) { m.logger = l }
}

// New returns a monitor for the first connected monitor matching filter.
// spec is the reference table every monitor's codes fall back to.
func New(filter Filter, backend ddc.Backend, spec *vcp.CodeStorage, opts ...Option) *Monitor {
	m := &Monitor{filter: filter, backend: backend, spec: spec}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.clock == nil {
		m.clock = batch.NewClock()
	}
	return m
}

func (m *Monitor) String() string {
	return "<" + m.filter.String() + ">"
}

// Filter returns the filter the monitor was created with.
func (m *Monitor) Filter() Filter { return m.filter }

// Info returns the matched monitor's info.
func (m *Monitor) Info(ctx context.Context) (ddc.Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.infoLocked(ctx)
}

func (m *Monitor) infoLocked(ctx context.Context) (ddc.Info, error) {
	if m.info != nil {
		return *m.info, nil
	}
	info, err := Find(ctx, m.backend, m.filter, m.logger)
	if err != nil {
		return ddc.Info{}, err
	}
	m.info = &info
	return info, nil
}

// Codes returns the monitor's code table, an overlay of the reference
// table with any persisted overrides applied.
func (m *Monitor) Codes(ctx context.Context) (*vcp.CodeStorage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codesLocked(ctx)
}

func (m *Monitor) codesLocked(ctx context.Context) (*vcp.CodeStorage, error) {
	if m.codes != nil {
		return m.codes, nil
	}

	codes := vcp.NewOverlay(m.spec)
	if m.store != nil {
		info, err := m.infoLocked(ctx)
		if err != nil {
			return nil, err
		}
		d, found, err := m.store.LoadOverrides(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		if found {
			if err := schema.Validate(d); err != nil {
				return nil, fmt.Errorf("stored overrides for %s: %w", info.ID, err)
			}
			if err := codes.Deserialize(d, m.spec); err != nil {
				return nil, fmt.Errorf("stored overrides for %s: %w", info.ID, err)
			}
			m.logger.Debug("loaded code overrides", "monitor", info.ID)
		}
	}
	m.codes = codes
	return codes, nil
}

// Code resolves a code name or key in the monitor's table.
func (m *Monitor) Code(ctx context.Context, id string) (vcp.CodeEntry, error) {
	codes, err := m.Codes(ctx)
	if err != nil {
		return nil, err
	}
	return codes.Code(id)
}

// Reading is the result of reading a code.
type Reading struct {
	Code    vcp.CodeEntry
	Raw     uint16
	Maximum uint16
	Type    ddc.ReplyType
	// Value is the named value matching Raw, or nil.
	Value vcp.ValueEntry
}

// String returns the value's name, or the raw number when unnamed.
func (r Reading) String() string {
	if r.Value != nil {
		return r.Value.Name()
	}
	return strconv.Itoa(int(r.Raw))
}

// Read reads a code from the monitor.
func (m *Monitor) Read(ctx context.Context, codeID string) (Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readLocked(ctx, codeID)
}

func (m *Monitor) readLocked(ctx context.Context, codeID string) (Reading, error) {
	info, code, err := m.resolveLocked(ctx, codeID)
	if err != nil {
		return Reading{}, err
	}

	reply, err := m.backend.Read(ctx, info.ID, uint8(code.Key()))
	if err != nil {
		return Reading{}, fmt.Errorf("read %s: %w", code.Name(), err)
	}

	r := Reading{Code: code, Raw: reply.Current, Maximum: reply.Maximum, Type: reply.Type}
	if v, err := code.Value(vcp.FormatKey(vcp.Key(reply.Current))); err == nil {
		r.Value = v
	}
	m.logger.Debug("read code", "monitor", info.ID, "code", code.Name(), "value", r.String())
	return r, nil
}

func (m *Monitor) resolveLocked(ctx context.Context, codeID string) (ddc.Info, vcp.CodeEntry, error) {
	info, err := m.infoLocked(ctx)
	if err != nil {
		return ddc.Info{}, nil, err
	}
	codes, err := m.codesLocked(ctx)
	if err != nil {
		return ddc.Info{}, nil, err
	}
	code, err := codes.Code(codeID)
	if err != nil {
		return ddc.Info{}, nil, err
	}
	if code.Key() > 0xFF {
		return ddc.Info{}, nil, fmt.Errorf("code %s does not fit in a byte", code.Key())
	}
	return info, code, nil
}

// ResolveValue turns a value name or number into the raw value for code.
// Key-shaped input is used as is; anything else must name a value.
func ResolveValue(code vcp.CodeEntry, valueID string) (uint16, error) {
	if k, ok := vcp.ParseKey(valueID); ok {
		if k > 0xFFFF {
			return 0, fmt.Errorf("value %s out of range for %s", k, code.Name())
		}
		return uint16(k), nil
	}
	v, err := code.Value(valueID)
	if err != nil {
		return 0, fmt.Errorf("code %s: %w", code.Name(), err)
	}
	if v.Key() > 0xFFFF {
		return 0, fmt.Errorf("value %s out of range for %s", v.Key(), code.Name())
	}
	return uint16(v.Key()), nil
}

// Write sets a code. With verify, the value is read back and compared.
func (m *Monitor) Write(ctx context.Context, codeID, valueID string, verify bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeLocked(ctx, codeID, valueID, verify)
}

func (m *Monitor) writeLocked(ctx context.Context, codeID, valueID string, verify bool) error {
	info, code, err := m.resolveLocked(ctx, codeID)
	if err != nil {
		return err
	}
	raw, err := ResolveValue(code, valueID)
	if err != nil {
		return err
	}

	if err := m.backend.Write(ctx, info.ID, uint8(code.Key()), raw); err != nil {
		return fmt.Errorf("write %s: %w", code.Name(), err)
	}
	m.logger.Debug("wrote code", "monitor", info.ID, "code", code.Name(), "value", raw)

	if verify {
		reply, err := m.backend.Read(ctx, info.ID, uint8(code.Key()))
		if err != nil {
			return fmt.Errorf("verify %s: %w", code.Name(), err)
		}
		if reply.Current != raw {
			return fmt.Errorf("%w: %s is %d, wrote %d", ErrVerifyFailed, code.Name(), reply.Current, raw)
		}
	}

	if m.journal != nil {
		rec := store.WriteRecord{
			RunID:     batch.RunID(ctx),
			MonitorID: info.ID,
			Code:      uint8(code.Key()),
			Value:     raw,
			Verified:  verify,
			Seq:       m.clock.Next(),
		}
		if err := m.journal.WriteLog(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Toggle cycles code through values: it writes the value following the
// current one, or the first value when the current one is not in the list.
// The write is read back when verify is set. It returns the value written.
func (m *Monitor) Toggle(ctx context.Context, codeID string, values []string, verify bool) (string, error) {
	if len(values) < 2 {
		return "", errors.New("toggle needs at least two values")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, err := m.readLocked(ctx, codeID)
	if err != nil {
		return "", err
	}

	next := values[0]
	for i, v := range values {
		raw, err := ResolveValue(cur.Code, v)
		if err != nil {
			return "", err
		}
		if raw == cur.Raw {
			next = values[(i+1)%len(values)]
			break
		}
	}

	if err := m.writeLocked(ctx, codeID, next, verify); err != nil {
		return "", err
	}
	return next, nil
}

// LoadCapabilities restricts the monitor's code table to what the monitor
// reports in its capabilities string, and persists the result.
func (m *Monitor) LoadCapabilities(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, err := m.infoLocked(ctx)
	if err != nil {
		return err
	}
	raw, err := m.backend.Capabilities(ctx, info.ID)
	if err != nil {
		return fmt.Errorf("read capabilities: %w", err)
	}
	caps, err := capabilities.Parse(raw)
	if err != nil {
		return err
	}
	reported, err := caps.VCP()
	if err != nil {
		return err
	}

	codes, err := m.codesLocked(ctx)
	if err != nil {
		return err
	}
	if err := codes.LoadCapabilities(reported); err != nil {
		return err
	}
	m.logger.Info("loaded capabilities", "monitor", info.ID, "codes", len(reported))
	return m.saveLocked(ctx)
}

// ExportCodes returns the monitor's code table as a diff against the
// reference table.
func (m *Monitor) ExportCodes(ctx context.Context) (doc.Value, error) {
	codes, err := m.Codes(ctx)
	if err != nil {
		return nil, err
	}
	return codes.Serialize(m.spec), nil
}

// ImportCodes replaces the monitor's code table with an override document
// and persists it.
func (m *Monitor) ImportCodes(ctx context.Context, d doc.Value) error {
	if err := schema.Validate(d); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	codes := vcp.NewOverlay(m.spec)
	if err := codes.Deserialize(d, m.spec); err != nil {
		return err
	}
	m.codes = codes
	return m.saveLocked(ctx)
}

// Save persists the monitor's code table. Without a store it does nothing.
func (m *Monitor) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(ctx)
}

func (m *Monitor) saveLocked(ctx context.Context) error {
	if m.store == nil || m.codes == nil {
		return nil
	}
	info, err := m.infoLocked(ctx)
	if err != nil {
		return err
	}
	if err := m.store.SaveOverrides(ctx, info.ID, m.codes.Serialize(m.spec)); err != nil {
		return err
	}
	m.logger.Debug("saved code overrides", "monitor", info.ID)
	return nil
}

// ResetCodes drops the monitor's overrides.
func (m *Monitor) ResetCodes(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.codes = nil
	if m.store == nil {
		return nil
	}
	info, err := m.infoLocked(ctx)
	if err != nil {
		return err
	}
	return m.store.DeleteOverrides(ctx, info.ID)
}
