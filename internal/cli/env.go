package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/vcpctl/internal/batch"
	"github.com/roach88/vcpctl/internal/config"
	"github.com/roach88/vcpctl/internal/ddc"
	"github.com/roach88/vcpctl/internal/logging"
	"github.com/roach88/vcpctl/internal/mccs"
	"github.com/roach88/vcpctl/internal/monitor"
	"github.com/roach88/vcpctl/internal/schema"
	"github.com/roach88/vcpctl/internal/store"
	"github.com/roach88/vcpctl/internal/vcp"
)

// Env is everything a monitor command needs: configuration, the code
// registry, the device backend and the database.
type Env struct {
	Config    *config.Config
	Logger    *slog.Logger
	Spec      *vcp.CodeStorage
	Backend   ddc.Backend
	Store     *store.Store
	Clock     *batch.Clock
	Formatter *OutputFormatter

	ignoreErrors bool
	runIDs       batch.IDGenerator
	monitors     map[string]*monitor.Monitor
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// openEnv loads the configuration and opens the database. Flags given on
// the command line win over the config file. Callers must Close the Env.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		f := newFormatter(opts, cmd)
		return nil, report(f, ErrCodeConfig, ExitCommandError, "failed to load config", err)
	}

	if opts.Database != "" {
		cfg.Database.Path = opts.Database
	}
	if cmd.Flags().Changed("ignore-errors") || opts.IgnoreErrors {
		cfg.CLI.IgnoreErrors = opts.IgnoreErrors
	}
	if !cmd.Flags().Changed("format") && cfg.CLI.Format != "" {
		opts.Format = cfg.CLI.Format
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}

	f := newFormatter(opts, cmd)
	logger := logging.New(cfg.Logging, Version, opts.LogWriter)
	vcp.SetLogger(logger)

	spec, err := mccs.Bootstrap(cfg.VCP.CustomCodes.Root)
	if err != nil {
		return nil, report(f, ErrCodeConfig, ExitCommandError, "failed to load code table", err)
	}

	backend := opts.Backend
	if backend == nil {
		monitors, err := cfg.SimulatedMonitors()
		if err != nil {
			return nil, report(f, ErrCodeConfig, ExitCommandError, "invalid simulator config", err)
		}
		backend = ddc.NewSimulator(monitors...)
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, report(f, ErrCodeGeneric, ExitCommandError, "failed to create database directory", err)
		}
	}
	logger.Debug("opening database", "path", cfg.Database.Path)
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, report(f, ErrCodeGeneric, ExitCommandError, "failed to open database", err)
	}

	seq, err := st.LastSeq(cmd.Context())
	if err != nil {
		st.Close()
		return nil, report(f, ErrCodeGeneric, ExitCommandError, "failed to read write log", err)
	}

	return &Env{
		Config:       cfg,
		Logger:       logger,
		Spec:         spec,
		Backend:      backend,
		Store:        st,
		Clock:        batch.NewClockAt(seq),
		Formatter:    f,
		ignoreErrors: cfg.CLI.IgnoreErrors,
		runIDs:       opts.RunIDs,
		monitors:     make(map[string]*monitor.Monitor),
	}, nil
}

// Close closes the database.
func (e *Env) Close() {
	if err := e.Store.Close(); err != nil {
		e.Logger.Error("error closing database", "error", err)
	}
}

// Monitor returns the monitor selected by filter. Repeated filters share
// one Monitor so a run sees its own code table changes.
func (e *Env) Monitor(filter string) (*monitor.Monitor, error) {
	if m, ok := e.monitors[filter]; ok {
		return m, nil
	}
	f, err := monitor.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	return e.monitorFor(filter, f), nil
}

// MonitorByID returns the monitor with exactly the given ID.
func (e *Env) MonitorByID(id string) *monitor.Monitor {
	return e.monitorFor("id:"+id, monitor.IDFilter(id))
}

func (e *Env) monitorFor(key string, f monitor.Filter) *monitor.Monitor {
	if m, ok := e.monitors[key]; ok {
		return m
	}
	m := monitor.New(f, e.Backend, e.Spec,
		monitor.WithStore(e.Store),
		monitor.WithJournal(e.Store),
		monitor.WithClock(e.Clock),
		monitor.WithLogger(e.Logger),
	)
	e.monitors[key] = m
	return m
}

// Run executes cmds as one batch run.
func (e *Env) Run(ctx context.Context, cmds []batch.Command) (batch.Result, error) {
	runner := &batch.Runner{
		Logger:       e.Logger,
		IgnoreErrors: e.ignoreErrors,
		IDs:          e.runIDs,
	}
	return runner.Run(ctx, cmds)
}

// finish reports a batch result. Commands skipped under --ignore-errors
// still make the command fail.
func (e *Env) finish(res batch.Result, err error) error {
	if err != nil {
		return e.fail("run failed", err)
	}
	if !res.OK() {
		for _, cerr := range res.Failed {
			code, _ := classify(cerr.Err)
			_ = e.Formatter.Error(code, cerr.Error(), nil)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d command(s) failed", len(res.Failed), res.Executed))
	}
	return nil
}

// fail reports err and returns the matching ExitError.
func (e *Env) fail(message string, err error) error {
	code, exit := classify(err)
	return report(e.Formatter, code, exit, message, err)
}

func report(f *OutputFormatter, code string, exit int, message string, err error) error {
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exit, code+": "+message, err)
}

// classify maps an error to a response code and an exit code.
func classify(err error) (string, int) {
	var schemaErr *schema.Error
	switch {
	case errors.Is(err, monitor.ErrNoMonitor):
		return ErrCodeNoMonitor, ExitCommandError
	case errors.Is(err, monitor.ErrVerifyFailed):
		return ErrCodeVerifyFailed, ExitFailure
	case vcp.IsNotFound(err):
		return ErrCodeNotFound, ExitFailure
	case vcp.IsInvalidArgument(err):
		return ErrCodeInvalidArgument, ExitFailure
	case errors.As(err, &schemaErr):
		return ErrCodeValidation, ExitFailure
	case errors.Is(err, ddc.ErrUnsupportedCode), errors.Is(err, ddc.ErrOutOfRange), errors.Is(err, ddc.ErrUnknownMonitor):
		return ErrCodeDevice, ExitFailure
	case errors.Is(err, os.ErrNotExist):
		return ErrCodeFileNotFound, ExitCommandError
	default:
		return ErrCodeGeneric, ExitFailure
	}
}
