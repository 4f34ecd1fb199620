package harness

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/roach88/vcpctl/internal/batch"
	"github.com/roach88/vcpctl/internal/config"
	"github.com/roach88/vcpctl/internal/ddc"
	"github.com/roach88/vcpctl/internal/logging"
	"github.com/roach88/vcpctl/internal/mccs"
	"github.com/roach88/vcpctl/internal/monitor"
	"github.com/roach88/vcpctl/internal/script"
	"github.com/roach88/vcpctl/internal/store"
	"github.com/roach88/vcpctl/internal/vcp"
)

// Harness holds the state of one scenario run.
type Harness struct {
	store    *store.Store
	backend  *ddc.Simulator
	spec     *vcp.CodeStorage
	clock    *batch.Clock
	logger   *slog.Logger
	monitors map[string]*monitor.Monitor
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with a fixed run id
// and a clock starting at zero. Step failures are part of the result, not
// an error: the returned error covers setup problems only.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	spec, err := mccs.Bootstrap(scenario.CustomCodes.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to build code table: %w", err)
	}

	cfg := config.Config{Simulator: config.SimulatorConfig{Monitors: scenario.Monitors}}
	sims, err := cfg.SimulatedMonitors()
	if err != nil {
		return nil, fmt.Errorf("failed to build monitors: %w", err)
	}

	h := &Harness{
		store:    st,
		backend:  ddc.NewSimulator(sims...),
		spec:     spec,
		clock:    batch.NewClock(),
		logger:   logging.Discard(),
		monitors: make(map[string]*monitor.Monitor),
	}

	runID := scenario.RunID
	if runID == "" {
		runID = DefaultRunID
	}
	result := NewResult(runID)

	cmds, err := script.Commands(scenario.Steps, h.Monitor, func(line string) {
		result.Output = append(result.Output, line)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build steps: %w", err)
	}

	runner := &batch.Runner{
		Logger:       h.logger,
		IgnoreErrors: scenario.IgnoreErrors,
		IDs:          batch.NewFixedGenerator(runID),
	}
	res, runErr := runner.Run(ctx, cmds)
	result.Executed = res.Executed
	for _, cerr := range res.Failed {
		result.Failed = append(result.Failed, cerr.Error())
	}
	if runErr != nil {
		// Without ignore_errors the run stops at the first failure.
		result.Failed = append(result.Failed, runErr.Error())
	}

	if err := h.collectTrace(ctx, result); err != nil {
		return nil, err
	}

	actx := &AssertionContext{Ctx: ctx, Monitors: h.Monitor, Spec: spec}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// Monitor returns the monitor a filter selects, creating it on first use.
// Monitors share the harness store and clock.
func (h *Harness) Monitor(filter string) (*monitor.Monitor, error) {
	if m, ok := h.monitors[filter]; ok {
		return m, nil
	}
	f, err := monitor.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	m := monitor.New(f, h.backend, h.spec,
		monitor.WithStore(h.store),
		monitor.WithJournal(h.store),
		monitor.WithClock(h.clock),
		monitor.WithLogger(h.logger),
	)
	h.monitors[filter] = m
	return m, nil
}

// collectTrace reads the write log of every simulated monitor into the
// result, ordered by seq.
func (h *Harness) collectTrace(ctx context.Context, result *Result) error {
	infos, err := h.backend.Enumerate(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate monitors: %w", err)
	}

	var events []TraceEvent
	for _, info := range infos {
		writes, err := h.store.ListWrites(ctx, info.ID)
		if err != nil {
			return fmt.Errorf("failed to read write log: %w", err)
		}
		for _, w := range writes {
			key := vcp.Key(w.Code)
			event := TraceEvent{
				Seq:      w.Seq,
				Monitor:  w.MonitorID,
				Code:     key.String(),
				Value:    w.Value,
				Verified: w.Verified,
			}
			if code, err := h.spec.Code(key.String()); err == nil {
				event.Name = code.Name()
			}
			events = append(events, event)
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })
	for _, e := range events {
		result.AddWrite(e)
	}
	return nil
}
