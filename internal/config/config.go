// Package config loads vcpctl's configuration from a YAML or TOML file,
// validates it against an embedded JSON schema and applies environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/vcpctl/internal/ddc"
	"github.com/roach88/vcpctl/internal/doc"
	"github.com/roach88/vcpctl/internal/vcp"
)

// Config is the root configuration structure.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
	Database  DatabaseConfig  `yaml:"database" toml:"database"`
	CLI       CLIConfig       `yaml:"cli" toml:"cli"`
	VCP       VCPConfig       `yaml:"vcp" toml:"vcp"`
	Simulator SimulatorConfig `yaml:"simulator" toml:"simulator"`
}

// LoggingConfig selects the log handler.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	Output string `yaml:"output" toml:"output"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// CLIConfig holds command-line defaults.
type CLIConfig struct {
	IgnoreErrors bool   `yaml:"ignore_errors" toml:"ignore_errors"`
	Format       string `yaml:"format" toml:"format"`
}

// VCPConfig customizes the code registry.
type VCPConfig struct {
	// CustomCodes is an override document applied on top of the MCCS table.
	CustomCodes doc.Document `yaml:"custom_codes" toml:"custom_codes"`
}

// SimulatorConfig lists the monitors served by the simulated backend.
type SimulatorConfig struct {
	Monitors []SimulatorMonitor `yaml:"monitors" toml:"monitors"`
}

// SimulatorMonitor configures one simulated monitor. Code keys are
// decimal or 0x-prefixed hex strings.
type SimulatorMonitor struct {
	ID             string            `yaml:"id" toml:"id"`
	Adapter        string            `yaml:"adapter" toml:"adapter"`
	Name           string            `yaml:"name" toml:"name"`
	Model          string            `yaml:"model" toml:"model"`
	Serial         string            `yaml:"serial" toml:"serial"`
	ManufacturerID string            `yaml:"manufacturer_id" toml:"manufacturer_id"`
	ProductID      string            `yaml:"product_id" toml:"product_id"`
	Primary        bool              `yaml:"primary" toml:"primary"`
	Capabilities   string            `yaml:"capabilities" toml:"capabilities"`
	Values         map[string]uint16 `yaml:"values" toml:"values"`
	Maximum        map[string]uint16 `yaml:"maximum" toml:"maximum"`
	Momentary      []string          `yaml:"momentary" toml:"momentary"`
}

// Simulated converts the configuration into a simulator monitor.
func (m SimulatorMonitor) Simulated() (ddc.SimulatedMonitor, error) {
	out := ddc.SimulatedMonitor{
		Info: ddc.Info{
			ID:             m.ID,
			Adapter:        m.Adapter,
			Name:           m.Name,
			Model:          m.Model,
			Serial:         m.Serial,
			ManufacturerID: m.ManufacturerID,
			ProductID:      m.ProductID,
			Primary:        m.Primary,
		},
		Capabilities: m.Capabilities,
		Values:       make(map[uint8]uint16, len(m.Values)),
		Maximum:      make(map[uint8]uint16, len(m.Maximum)),
		Momentary:    make(map[uint8]bool, len(m.Momentary)),
	}

	for k, v := range m.Values {
		code, err := parseCode(k)
		if err != nil {
			return ddc.SimulatedMonitor{}, fmt.Errorf("monitor %s values: %w", m.ID, err)
		}
		out.Values[code] = v
	}
	for k, v := range m.Maximum {
		code, err := parseCode(k)
		if err != nil {
			return ddc.SimulatedMonitor{}, fmt.Errorf("monitor %s maximum: %w", m.ID, err)
		}
		out.Maximum[code] = v
	}
	for _, k := range m.Momentary {
		code, err := parseCode(k)
		if err != nil {
			return ddc.SimulatedMonitor{}, fmt.Errorf("monitor %s momentary: %w", m.ID, err)
		}
		out.Momentary[code] = true
	}
	return out, nil
}

func parseCode(s string) (uint8, error) {
	k, ok := vcp.ParseKey(s)
	if !ok || k > 0xFF {
		return 0, fmt.Errorf("invalid vcp code %q", s)
	}
	return uint8(k), nil
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Database: DatabaseConfig{
			Path: defaultDatabasePath(),
		},
		CLI: CLIConfig{
			Format: "text",
		},
	}
}

func defaultDatabasePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "vcpctl", "vcpctl.db")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "vcpctl", "vcpctl.db")
	}
	return "vcpctl.db"
}

// Validate checks values the schema cannot express.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	seen := make(map[string]bool, len(c.Simulator.Monitors))
	for _, m := range c.Simulator.Monitors {
		if seen[m.ID] {
			errs = append(errs, fmt.Sprintf("simulator.monitors: duplicate id %q", m.ID))
		}
		seen[m.ID] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SimulatedMonitors returns the configured simulator monitors, or the
// demo set when none are configured.
func (c *Config) SimulatedMonitors() ([]ddc.SimulatedMonitor, error) {
	if len(c.Simulator.Monitors) == 0 {
		return ddc.DemoMonitors(), nil
	}
	out := make([]ddc.SimulatedMonitor, 0, len(c.Simulator.Monitors))
	for _, m := range c.Simulator.Monitors {
		sm, err := m.Simulated()
		if err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, nil
}
