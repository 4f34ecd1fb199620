package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcpctl/internal/doc"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"VCPCTL_LOG_LEVEL", "VCPCTL_LOG_FORMAT", "VCPCTL_DB", "VCPCTL_IGNORE_ERRORS"} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/data")
}

const yamlConfig = `logging:
  level: debug
  format: json
database:
  path: /tmp/vcp.db
cli:
  ignore_errors: true
vcp:
  custom_codes:
    "0xE0":
      name: Picture Mode
      type: NC
      values:
        "0x01": Eco
simulator:
  monitors:
    - id: mon-1
      model: U2720Q
      primary: true
      capabilities: "(vcp(10 60(0F 11)))"
      values:
        "0x10": 50
        "0x60": 15
      maximum:
        "0x10": 100
      momentary: ["0x04"]
`

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "config.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json", Output: "stderr"}, cfg.Logging)
	assert.Equal(t, "/tmp/vcp.db", cfg.Database.Path)
	assert.True(t, cfg.CLI.IgnoreErrors)
	assert.Equal(t, "text", cfg.CLI.Format)

	require.False(t, cfg.VCP.CustomCodes.IsZero())
	m, ok := cfg.VCP.CustomCodes.Root.(*doc.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"0xE0"}, m.Keys())

	monitors, err := cfg.SimulatedMonitors()
	require.NoError(t, err)
	require.Len(t, monitors, 1)
	assert.Equal(t, "mon-1", monitors[0].Info.ID)
	assert.True(t, monitors[0].Info.Primary)
	assert.Equal(t, map[uint8]uint16{0x10: 50, 0x60: 15}, monitors[0].Values)
	assert.Equal(t, map[uint8]uint16{0x10: 100}, monitors[0].Maximum)
	assert.True(t, monitors[0].Momentary[0x04])
}

const tomlConfig = `[logging]
level = "warn"

[database]
path = "/tmp/vcp.db"

[vcp.custom_codes."0xE0"]
name = "Picture Mode"
aliases = ["Mode"]

[[simulator.monitors]]
id = "mon-1"
values = { "0x10" = 50 }
`

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "config.toml", tomlConfig))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	m, ok := cfg.VCP.CustomCodes.Root.(*doc.Mapping)
	require.True(t, ok)
	entry, ok := m.Get("0xE0")
	require.True(t, ok)
	name, _ := entry.(*doc.Mapping).Get("name")
	assert.Equal(t, doc.Scalar("Picture Mode"), name)

	monitors, err := cfg.SimulatedMonitors()
	require.NoError(t, err)
	assert.Equal(t, map[uint8]uint16{0x10: 50}, monitors[0].Values)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "/data/vcpctl/vcpctl.db", cfg.Database.Path)
	assert.True(t, cfg.VCP.CustomCodes.IsZero())

	monitors, err := cfg.SimulatedMonitors()
	require.NoError(t, err)
	assert.NotEmpty(t, monitors)
}

func TestLoadFindsConfigInXDGDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vcpctl"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vcpctl", "config.yaml"), []byte("cli:\n  format: json\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.CLI.Format)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("VCPCTL_LOG_LEVEL", "error")
	t.Setenv("VCPCTL_DB", "/override.db")
	t.Setenv("VCPCTL_IGNORE_ERRORS", "true")

	cfg, err := Load(writeConfig(t, "config.yaml", yamlConfig))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "/override.db", cfg.Database.Path)
	assert.True(t, cfg.CLI.IgnoreErrors)

	t.Setenv("VCPCTL_IGNORE_ERRORS", "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestSchemaRejectsBadConfig(t *testing.T) {
	cases := map[string]struct {
		content string
		path    string
	}{
		"unknown section":   {"colour: red\n", ""},
		"bad level":         {"logging:\n  level: loud\n", "logging.level"},
		"monitor without id": {"simulator:\n  monitors:\n    - model: X\n", "simulator.monitors[0]"},
		"value too large":   {"simulator:\n  monitors:\n    - id: a\n      values:\n        \"0x10\": 70000\n", "simulator.monitors[0].values.0x10"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, "config.yaml", tc.content))
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			if tc.path != "" {
				assert.Equal(t, tc.path, ve.Path)
			}
		})
	}
}

func TestValidateDuplicateMonitors(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "config.yaml", "simulator:\n  monitors:\n    - id: a\n    - id: a\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate id "a"`)
}

func TestUnsupportedExtension(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "config.json", "{}"))
	assert.Error(t, err)
}

func TestSimulatedRejectsBadCode(t *testing.T) {
	_, err := SimulatorMonitor{ID: "a", Values: map[string]uint16{"0x100": 1}}.Simulated()
	assert.Error(t, err)
	_, err = SimulatorMonitor{ID: "a", Momentary: []string{"brightness"}}.Simulated()
	assert.Error(t, err)
}

func TestPointerToPath(t *testing.T) {
	assert.Equal(t, "", pointerToPath(""))
	assert.Equal(t, "logging.level", pointerToPath("/logging/level"))
	assert.Equal(t, "simulator.monitors[0].id", pointerToPath("/simulator/monitors/0/id"))
}
