// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "/proc", cfg.Host.ProcFS)
	assert.Equal(t, 5*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 0, cfg.Monitor.Cores)
	assert.Empty(t, cfg.Limits.Values)
	assert.Equal(t, 3, cfg.Limits.Retries)
	assert.False(t, *cfg.Exporter.Stdout.Enabled)
	assert.True(t, *cfg.Exporter.Prometheus.Enabled)
	assert.Equal(t, MetricsLevelAll, cfg.Exporter.Prometheus.MetricsLevel)
	assert.Equal(t, []string{":28283"}, cfg.Web.ListenAddresses)
	assert.False(t, *cfg.Dev.FakeSMU.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	yamlData := `
log:
  level: debug
  format: json
monitor:
  interval: 2s
  cores: 16
limits:
  values:
    stapm-limit: 25000
    FAST_LIMIT: 30000
  controls:
    - power_saving
  retries: 5
  backoff: 250ms
exporter:
  prometheus:
    metricsLevel: [power, thermal]
`
	cfg, err := Load(strings.NewReader(yamlData))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 16, cfg.Monitor.Cores)
	assert.Equal(t, map[string]uint32{"stapm-limit": 25000, "fast-limit": 30000}, cfg.Limits.Values)
	assert.Equal(t, []string{"power-saving"}, cfg.Limits.Controls)
	assert.Equal(t, 5, cfg.Limits.Retries)
	assert.Equal(t, 250*time.Millisecond, cfg.Limits.Backoff)
	assert.Equal(t, MetricsLevelPower|MetricsLevelThermal, cfg.Exporter.Prometheus.MetricsLevel)
}

func TestLoadEmptyFromYAML(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Log, cfg.Log)
	assert.Equal(t, def.Monitor, cfg.Monitor)
	assert.Equal(t, def.Limits.Retries, cfg.Limits.Retries)
	assert.Equal(t, def.Exporter.Prometheus.MetricsLevel, cfg.Exporter.Prometheus.MetricsLevel)
}

func TestInvalidConfigurationValues(t *testing.T) {
	tests := []struct {
		name          string
		yaml          string
		expectedError string
	}{
		{"log level", "log:\n  level: verbose\n", "invalid log level"},
		{"log format", "log:\n  format: xml\n", "invalid log format"},
		{"procfs", "host:\n  procfs: /does/not/exist\n", "invalid procfs path"},
		{"negative interval", "monitor:\n  interval: -1s\n", "invalid monitor interval"},
		{"negative cores", "monitor:\n  cores: -2\n", "invalid monitor cores"},
		{"unknown limit", "limits:\n  values:\n    socket-power: 10\n", "unknown limit: socket-power"},
		{"unknown control", "limits:\n  controls: [turbo]\n", "unknown control: turbo"},
		{"negative retries", "limits:\n  retries: -1\n", "invalid limits retries"},
		{"listen address", "web:\n  listenAddresses: ['localhost']\n", "invalid web listen address"},
		{"listen port", "web:\n  listenAddresses: [':70000']\n", "port must be between 1 and 65535"},
		{"no listen address", "web:\n  listenAddresses: []\n", "at least one web listen address"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedError)
		})
	}
}

func TestDuplicateLimitSpellings(t *testing.T) {
	tests := []struct {
		name          string
		yaml          string
		expectedError string
	}{
		{"limit", "limits:\n  values:\n    stapm_limit: 1000\n    stapm-limit: 2000\n", "limit stapm-limit configured more than once"},
		{"limit case", "limits:\n  values:\n    FAST_LIMIT: 1000\n    fast-limit: 1000\n", "limit fast-limit configured more than once"},
		{"control", "limits:\n  controls: [power-saving, power_saving]\n", "control power-saving configured more than once"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// map iteration order must not decide the outcome
			for range 20 {
				_, err := Load(strings.NewReader(tc.yaml))
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
			}
		})
	}
}

func TestDuplicateLimitFlags(t *testing.T) {
	app := kingpin.New("test", "Test application")
	updateConfig := RegisterFlags(app)
	_, err := app.Parse([]string{"--limit=stapm_limit=1000", "--limit=stapm-limit=2000"})
	require.NoError(t, err)

	err = updateConfig(DefaultConfig())
	assert.ErrorContains(t, err, "limit stapm-limit passed more than once")
}

func TestLimitFlagOverridesOtherSpelling(t *testing.T) {
	cfg, err := Load(strings.NewReader("limits:\n  values:\n    stapm-limit: 20000\n"))
	require.NoError(t, err)

	app := kingpin.New("test", "Test application")
	updateConfig := RegisterFlags(app)
	_, err = app.Parse([]string{"--limit=stapm_limit=18000"})
	require.NoError(t, err)
	require.NoError(t, updateConfig(cfg))

	assert.Equal(t, map[string]uint32{"stapm-limit": 18000}, cfg.Limits.Values)
}

func TestInvalidYAML(t *testing.T) {
	_, err := Load(strings.NewReader("log: [level"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(strings.NewReader("exporter:\n  prometheus:\n    metricsLevel: [gpu]\n"))
	assert.ErrorContains(t, err, "unknown metrics level: gpu")
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))

	cfg, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open config file")
}

func TestCommandLinePrecedence(t *testing.T) {
	yamlData := `
log:
  level: warn
limits:
  values:
    stapm-limit: 20000
exporter:
  prometheus:
    enabled: false
`
	cfg, err := Load(strings.NewReader(yamlData))
	require.NoError(t, err)

	app := kingpin.New("test", "Test application")
	updateConfig := RegisterFlags(app)

	_, err = app.Parse([]string{
		"--log.level=debug",
		"--exporter.stdout",
		"--debug.pprof",
		"--monitor.interval=1s",
		"--monitor.cores=4",
		"--limit=stapm-limit=18000",
		"--limit=tctl_temp=85",
		"--control=power-saving",
	})
	require.NoError(t, err)
	require.NoError(t, updateConfig(cfg))

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, *cfg.Exporter.Stdout.Enabled)
	assert.False(t, *cfg.Exporter.Prometheus.Enabled, "prometheus exporter should remain disabled from yaml")
	assert.True(t, *cfg.Debug.Pprof.Enabled)
	assert.Equal(t, time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 4, cfg.Monitor.Cores)
	assert.Equal(t, map[string]uint32{"stapm-limit": 18000, "tctl-temp": 85}, cfg.Limits.Values)
	assert.Equal(t, []string{"power-saving"}, cfg.Limits.Controls)
}

func TestFlagsNotSetKeepConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Monitor.Cores = 12

	app := kingpin.New("test", "Test application")
	updateConfig := RegisterFlags(app)
	_, err := app.Parse([]string{})
	require.NoError(t, err)
	require.NoError(t, updateConfig(cfg))

	assert.Equal(t, 12, cfg.Monitor.Cores)
	assert.Equal(t, MetricsLevelAll, cfg.Exporter.Prometheus.MetricsLevel)
}

func TestInvalidLimitFlag(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedError string
	}{
		{"not a number", []string{"--limit=stapm-limit=fast"}, "invalid value for limit stapm-limit"},
		{"unknown register", []string{"--limit=gfx-temp=10"}, "unknown limit: gfx-temp"},
		{"unknown control", []string{"--control=boost"}, "unknown control: boost"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := kingpin.New("test", "Test application")
			updateConfig := RegisterFlags(app)
			_, err := app.Parse(tc.args)
			require.NoError(t, err)

			err = updateConfig(DefaultConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedError)
		})
	}
}

func TestMetricsFlag(t *testing.T) {
	app := kingpin.New("test", "Test application")
	updateConfig := RegisterFlags(app)
	_, err := app.Parse([]string{"--metrics=power", "--metrics=core"})
	require.NoError(t, err)

	cfg := DefaultConfig()
	require.NoError(t, updateConfig(cfg))
	assert.Equal(t, MetricsLevelPower|MetricsLevelCore, cfg.Exporter.Prometheus.MetricsLevel)
}

func TestValidateWithSkip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host.ProcFS = "/does/not/exist"
	assert.Error(t, cfg.Validate())
	assert.NoError(t, cfg.Validate(SkipHostValidation))
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.Values["stapm-limit"] = 25000

	out := cfg.String()
	assert.Contains(t, out, "level: info")
	assert.Contains(t, out, "stapm-limit: 25000")
	assert.Contains(t, out, "fake-smu:")

	parsed := &Config{}
	require.NoError(t, yaml.Unmarshal([]byte(out), parsed))
	assert.Equal(t, cfg.Exporter.Prometheus.MetricsLevel, parsed.Exporter.Prometheus.MetricsLevel)

	manual := cfg.manualString()
	assert.Contains(t, manual, "limit: stapm-limit=25000")
	assert.Contains(t, manual, "metrics: power,current,clock,thermal,voltage,core")
	assert.Contains(t, manual, "exporter.prometheus: true")
}

func TestBuilder(t *testing.T) {
	b := &Builder{}
	cfg, err := b.Merge(`
log:
  level: debug
limits:
  values:
    stapm-limit: 25000
`, `
limits:
  values:
    fast-limit: 30000
exporter:
  stdout:
    enabled: true
dev:
  fake-smu:
    enabled: true
    cores: 4
`).Build()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, map[string]uint32{"stapm-limit": 25000, "fast-limit": 30000}, cfg.Limits.Values)
	assert.True(t, ptr.Deref(cfg.Exporter.Stdout.Enabled, false))
	assert.True(t, ptr.Deref(cfg.Exporter.Prometheus.Enabled, false), "unset bool pointers keep their default")
	assert.True(t, ptr.Deref(cfg.Dev.FakeSMU.Enabled, false))
	assert.Equal(t, 4, cfg.Dev.FakeSMU.Cores)
}

func TestBuilderOverridesFalse(t *testing.T) {
	cfg, err := (&Builder{}).Use(DefaultConfig()).Merge(`
exporter:
  prometheus:
    enabled: false
`).Build()
	require.NoError(t, err)
	assert.False(t, ptr.Deref(cfg.Exporter.Prometheus.Enabled, true))
}

func TestBuilderInvalidYAML(t *testing.T) {
	_, err := (&Builder{}).Merge("log: [").Build()
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = (&Builder{}).Merge("limits:\n  values:\n    bogus: 1\n").Build()
	assert.ErrorContains(t, err, "unknown limit: bogus")
}
