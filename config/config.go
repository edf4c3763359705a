// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// Config represents the complete application configuration
type (
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	}
	Host struct {
		ProcFS string `yaml:"procfs"`
	}

	Monitor struct {
		Interval  time.Duration `yaml:"interval"`  // Interval between PM table refreshes
		Staleness time.Duration `yaml:"staleness"` // Time after which a sample is considered stale

		// Cores is the number of cores to sample per-core registers for; 0 detects
		// the count from procfs
		Cores int `yaml:"cores"`
	}

	// Limits are applied once at startup. Keys are register names such as
	// stapm-limit, values are in the register's native unit (mW, mA, MHz, °C, s)
	Limits struct {
		Values   map[string]uint32 `yaml:"values"`
		Controls []string          `yaml:"controls"`
		Retries  int               `yaml:"retries"` // retries on SMU timeout
		Backoff  time.Duration     `yaml:"backoff"`
	}

	// Development mode settings; disabled by default
	Dev struct {
		FakeSMU struct {
			Enabled *bool `yaml:"enabled"`
			Cores   int   `yaml:"cores"`
		} `yaml:"fake-smu"`
	}
	Web struct {
		Config          string   `yaml:"configFile"`
		ListenAddresses []string `yaml:"listenAddresses"`
	}

	// Exporter configuration
	StdoutExporter struct {
		Enabled *bool `yaml:"enabled"`
	}

	PrometheusExporter struct {
		Enabled         *bool    `yaml:"enabled"`
		DebugCollectors []string `yaml:"debugCollectors"`
		MetricsLevel    Level    `yaml:"metricsLevel"`
	}

	Exporter struct {
		Stdout     StdoutExporter     `yaml:"stdout"`
		Prometheus PrometheusExporter `yaml:"prometheus"`
	}

	// Debug configuration
	PprofDebug struct {
		Enabled *bool `yaml:"enabled"`
	}

	Debug struct {
		Pprof PprofDebug `yaml:"pprof"`
	}

	Config struct {
		Log      Log      `yaml:"log"`
		Host     Host     `yaml:"host"`
		Monitor  Monitor  `yaml:"monitor"`
		Limits   Limits   `yaml:"limits"`
		Exporter Exporter `yaml:"exporter"`
		Web      Web      `yaml:"web"`
		Debug    Debug    `yaml:"debug"`
		Dev      Dev      `yaml:"dev"` // WARN: do not expose dev settings as flags

		// limits and controls named more than once after their spellings are folded
		duplicates []string
	}
)

// MetricsLevelValue is a custom kingpin.Value that parses metrics groups directly into a Level
type MetricsLevelValue struct {
	level *Level
}

// NewMetricsLevelValue creates a new MetricsLevelValue with the given target
func NewMetricsLevelValue(target *Level) *MetricsLevelValue {
	return &MetricsLevelValue{level: target}
}

// Set implements kingpin.Value; repeated flags accumulate
func (m *MetricsLevelValue) Set(value string) error {
	level, err := ParseLevel([]string{value})
	if err != nil {
		return err
	}

	// the first explicit value replaces the default
	if *m.level == MetricsLevelAll {
		*m.level = 0
	}
	*m.level |= level
	return nil
}

func (m *MetricsLevelValue) String() string {
	return m.level.String()
}

func (m *MetricsLevelValue) IsCumulative() bool {
	return true
}

// DefaultListenAddress is the address the API server binds to when none is configured
const DefaultListenAddress = ":28283"

type SkipValidation int

const (
	SkipHostValidation SkipValidation = 1
)

const (
	// Flags
	LogLevelFlag  = "log.level"
	LogFormatFlag = "log.format"

	HostProcFSFlag = "host.procfs"

	MonitorIntervalFlag = "monitor.interval"
	MonitorStaleness    = "monitor.staleness" // not a flag
	MonitorCoresFlag    = "monitor.cores"

	LimitFlag        = "limit"
	ControlFlag      = "control"
	LimitsRetries    = "limits.retries" // not a flag
	LimitsBackoff    = "limits.backoff" // not a flag
	pprofEnabledFlag = "debug.pprof"

	WebConfigFlag        = "web.config-file"
	WebListenAddressFlag = "web.listen-address"

	// Exporters
	ExporterStdoutEnabledFlag = "exporter.stdout"

	ExporterPrometheusEnabledFlag = "exporter.prometheus"
	// NOTE: not a flag
	ExporterPrometheusDebugCollectors = "exporter.prometheus.debug-collectors"
	ExporterPrometheusMetricsFlag     = "metrics"

// WARN:  dev settings shouldn't be exposed as flags as flags are intended for end users
)

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	cfg := &Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Host: Host{
			ProcFS: "/proc",
		},
		Monitor: Monitor{
			Interval:  5 * time.Second,
			Staleness: 500 * time.Millisecond,
		},
		Limits: Limits{
			Values:  map[string]uint32{},
			Retries: 3,
			Backoff: 100 * time.Millisecond,
		},
		Exporter: Exporter{
			Stdout: StdoutExporter{
				Enabled: ptr.To(false),
			},
			Prometheus: PrometheusExporter{
				Enabled:         ptr.To(true),
				DebugCollectors: []string{"go"},
				MetricsLevel:    MetricsLevelAll,
			},
		},
		Debug: Debug{
			Pprof: PprofDebug{
				Enabled: ptr.To(false),
			},
		},
		Web: Web{
			ListenAddresses: []string{DefaultListenAddress},
		},
	}

	cfg.Dev.FakeSMU.Enabled = ptr.To(false)
	return cfg
}

// Load loads configuration from an io.Reader
func Load(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.sanitize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromFile loads configuration from a file
func FromFile(filePath string) (*Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Load(file)
}

type ConfigUpdaterFn func(*Config) error

// RegisterFlags registers command-line flags with kingpin app
// and returns ConfigUpdaterFn that updates the config from parsed flags
// as command line arguments override config file settings
func RegisterFlags(app *kingpin.Application) ConfigUpdaterFn {
	// track flags that were explicitly set
	flagsSet := map[string]bool{}

	app.PreAction(func(ctx *kingpin.ParseContext) error {
		flagsSet = map[string]bool{}

		for _, element := range ctx.Elements {
			if flag, ok := element.Clause.(*kingpin.FlagClause); ok && element.Value != nil {
				flagsSet[flag.Model().Name] = true
			}
		}
		return nil
	})

	// Logging
	logLevel := app.Flag(LogLevelFlag, "Logging level: debug, info, warn, error").Default("info").Enum("debug", "info", "warn", "error")
	logFormat := app.Flag(LogFormatFlag, "Logging format: text or json").Default("text").Enum("text", "json")
	// host
	hostProcFS := app.Flag(HostProcFSFlag, "Host procfs path").Default("/proc").ExistingDir()

	// monitor
	monitorInterval := app.Flag(MonitorIntervalFlag,
		"Interval between PM table refreshes; 0 to refresh only on demand").Default("5s").Duration()
	monitorCores := app.Flag(MonitorCoresFlag,
		"Number of cores to sample per-core registers for; 0 to detect from procfs").Default("0").Int()

	// limits
	limits := app.Flag(LimitFlag, "Limit to apply at startup as name=value, e.g. stapm-limit=25000 (repeatable)").StringMap()
	controls := app.Flag(ControlFlag, "SMU command to send at startup, e.g. power-saving (repeatable)").Strings()

	enablePprof := app.Flag(pprofEnabledFlag, "Enable pprof debug endpoints").Default("false").Bool()
	webConfig := app.Flag(WebConfigFlag, "Web config file path").Default("").String()
	webListenAddresses := app.Flag(WebListenAddressFlag, "Web server listen addresses").Default(DefaultListenAddress).Strings()

	// exporters
	stdoutExporterEnabled := app.Flag(ExporterStdoutEnabledFlag, "Enable stdout exporter").Default("false").Bool()

	prometheusExporterEnabled := app.Flag(ExporterPrometheusEnabledFlag, "Enable Prometheus exporter").Default("true").Bool()

	metricsLevel := MetricsLevelAll
	app.Flag(ExporterPrometheusMetricsFlag, "Metric groups to export (power,current,clock,thermal,voltage,core)").SetValue(NewMetricsLevelValue(&metricsLevel))

	return func(cfg *Config) error {
		if flagsSet[LogLevelFlag] {
			cfg.Log.Level = *logLevel
		}

		if flagsSet[LogFormatFlag] {
			cfg.Log.Format = *logFormat
		}

		if flagsSet[HostProcFSFlag] {
			cfg.Host.ProcFS = *hostProcFS
		}

		if flagsSet[MonitorIntervalFlag] {
			cfg.Monitor.Interval = *monitorInterval
		}
		if flagsSet[MonitorCoresFlag] {
			cfg.Monitor.Cores = *monitorCores
		}

		if flagsSet[LimitFlag] {
			if cfg.Limits.Values == nil {
				cfg.Limits.Values = map[string]uint32{}
			}
			// flags replace the file's value for the same register
			seen := make(map[string]string, len(*limits))
			for _, name := range sortedKeys(*limits) {
				raw := (*limits)[name]
				v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
				if err != nil {
					return fmt.Errorf("invalid value for limit %s: %q", name, raw)
				}
				key := normalizeName(name)
				if prev, dup := seen[key]; dup {
					return fmt.Errorf("limit %s passed more than once (%s, %s)", key, prev, name)
				}
				seen[key] = name
				delete(cfg.Limits.Values, name)
				cfg.Limits.Values[key] = uint32(v)
			}
		}
		if flagsSet[ControlFlag] {
			cfg.Limits.Controls = append(cfg.Limits.Controls, *controls...)
		}

		if flagsSet[pprofEnabledFlag] {
			cfg.Debug.Pprof.Enabled = enablePprof
		}

		if flagsSet[WebConfigFlag] {
			cfg.Web.Config = *webConfig
		}

		if flagsSet[WebListenAddressFlag] {
			cfg.Web.ListenAddresses = *webListenAddresses
		}

		if flagsSet[ExporterStdoutEnabledFlag] {
			cfg.Exporter.Stdout.Enabled = stdoutExporterEnabled
		}

		if flagsSet[ExporterPrometheusEnabledFlag] {
			cfg.Exporter.Prometheus.Enabled = prometheusExporterEnabled
		}

		if flagsSet[ExporterPrometheusMetricsFlag] {
			cfg.Exporter.Prometheus.MetricsLevel = metricsLevel
		}

		cfg.sanitize()
		return cfg.Validate()
	}
}

func (c *Config) sanitize() {
	c.Log.Level = strings.TrimSpace(c.Log.Level)
	c.Log.Format = strings.TrimSpace(c.Log.Format)
	c.Host.ProcFS = strings.TrimSpace(c.Host.ProcFS)
	c.Web.Config = strings.TrimSpace(c.Web.Config)
	for i := range c.Web.ListenAddresses {
		c.Web.ListenAddresses[i] = strings.TrimSpace(c.Web.ListenAddresses[i])
	}

	// register names are normalized to their kebab-case key; two spellings of
	// the same register are kept out of the map and reported by Validate
	if len(c.Limits.Values) > 0 {
		values := make(map[string]uint32, len(c.Limits.Values))
		for _, name := range sortedKeys(c.Limits.Values) {
			key := normalizeName(name)
			if _, dup := values[key]; dup {
				c.duplicates = append(c.duplicates, "limit "+key)
				continue
			}
			values[key] = c.Limits.Values[name]
		}
		c.Limits.Values = values
	}
	controls := make(map[string]bool, len(c.Limits.Controls))
	for i := range c.Limits.Controls {
		key := normalizeName(c.Limits.Controls[i])
		if controls[key] {
			c.duplicates = append(c.duplicates, "control "+key)
		}
		controls[key] = true
		c.Limits.Controls[i] = key
	}

	for i := range c.Exporter.Prometheus.DebugCollectors {
		c.Exporter.Prometheus.DebugCollectors[i] = strings.TrimSpace(c.Exporter.Prometheus.DebugCollectors[i])
	}
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Validate checks for configuration errors
func (c *Config) Validate(skips ...SkipValidation) error {
	validationSkipped := make(map[SkipValidation]bool, len(skips))
	for _, v := range skips {
		validationSkipped[v] = true
	}
	var errs []string
	{ // log level
		validLogLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if _, valid := validLogLevels[c.Log.Level]; !valid {
			errs = append(errs, fmt.Sprintf("invalid log level: %s", c.Log.Level))
		}
	}
	{ // log format
		validFormats := map[string]bool{
			"text": true,
			"json": true,
		}
		if _, valid := validFormats[c.Log.Format]; !valid {
			errs = append(errs, fmt.Sprintf("invalid log format: %s", c.Log.Format))
		}
	}

	{ // Validate host settings
		if _, skip := validationSkipped[SkipHostValidation]; !skip {
			if err := canReadDir(c.Host.ProcFS); err != nil {
				errs = append(errs, fmt.Sprintf("invalid procfs path: %s: %s ", c.Host.ProcFS, err.Error()))
			}
		}
	}
	{ // Web config file
		if c.Web.Config != "" {
			if err := canReadFile(c.Web.Config); err != nil {
				errs = append(errs, fmt.Sprintf("invalid web config file. path: %q: %s", c.Web.Config, err.Error()))
			}
		}
	}
	{ // Web listen addresses
		if len(c.Web.ListenAddresses) == 0 {
			errs = append(errs, "at least one web listen address must be specified")
		}
		for _, addr := range c.Web.ListenAddresses {
			if addr == "" {
				errs = append(errs, "web listen address cannot be empty")
				continue
			}
			if err := validateListenAddress(addr); err != nil {
				errs = append(errs, fmt.Sprintf("invalid web listen address %q: %s", addr, err.Error()))
			}
		}
	}
	{ // Monitor
		if c.Monitor.Interval < 0 {
			errs = append(errs, fmt.Sprintf("invalid monitor interval: %s can't be negative", c.Monitor.Interval))
		}
		if c.Monitor.Staleness < 0 {
			errs = append(errs, fmt.Sprintf("invalid monitor staleness: %s can't be negative", c.Monitor.Staleness))
		}
		if c.Monitor.Cores < 0 {
			errs = append(errs, fmt.Sprintf("invalid monitor cores: %d can't be negative", c.Monitor.Cores))
		}
	}
	{ // Limits
		for _, name := range sortedKeys(c.Limits.Values) {
			if _, err := ryzenadj.ParseSetter(name); err != nil {
				errs = append(errs, fmt.Sprintf("invalid limit: %s", err))
			}
		}
		for _, name := range c.Limits.Controls {
			if _, err := ryzenadj.ParseControl(name); err != nil {
				errs = append(errs, fmt.Sprintf("invalid control: %s", err))
			}
		}
		for _, name := range c.duplicates {
			errs = append(errs, fmt.Sprintf("%s configured more than once", name))
		}
		if c.Limits.Retries < 0 {
			errs = append(errs, fmt.Sprintf("invalid limits retries: %d can't be negative", c.Limits.Retries))
		}
		if c.Limits.Backoff < 0 {
			errs = append(errs, fmt.Sprintf("invalid limits backoff: %s can't be negative", c.Limits.Backoff))
		}
	}
	{ // Dev
		if c.Dev.FakeSMU.Cores < 0 {
			errs = append(errs, fmt.Sprintf("invalid fake-smu cores: %d can't be negative", c.Dev.FakeSMU.Cores))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, ", "))
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func canReadDir(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		// ignored on purpose
		_ = f.Close()
	}()

	_, err = f.ReadDir(1)
	return err
}

func canReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		// ignored on purpose
		_ = f.Close()
	}()

	buf := make([]byte, 8)
	_, err = f.Read(buf)
	return err
}

func validateListenAddress(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("port must be numeric, got %s", port)
	}
	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", portNum)
	}
	return nil
}

func (c *Config) String() string {
	bytes, err := yaml.Marshal(c)
	if err == nil {
		return string(bytes)
	}
	// NOTE: only reached if yaml marshalling fails
	return c.manualString()
}

func (c *Config) manualString() string {
	limits := make([]string, 0, len(c.Limits.Values))
	for _, name := range sortedKeys(c.Limits.Values) {
		limits = append(limits, fmt.Sprintf("%s=%d", name, c.Limits.Values[name]))
	}

	cfgs := []struct {
		Name  string
		Value string
	}{
		{LogLevelFlag, c.Log.Level},
		{LogFormatFlag, c.Log.Format},
		{HostProcFSFlag, c.Host.ProcFS},
		{MonitorIntervalFlag, c.Monitor.Interval.String()},
		{MonitorStaleness, c.Monitor.Staleness.String()},
		{MonitorCoresFlag, strconv.Itoa(c.Monitor.Cores)},
		{LimitFlag, strings.Join(limits, ", ")},
		{ControlFlag, strings.Join(c.Limits.Controls, ", ")},
		{LimitsRetries, strconv.Itoa(c.Limits.Retries)},
		{LimitsBackoff, c.Limits.Backoff.String()},
		{ExporterStdoutEnabledFlag, fmt.Sprintf("%v", ptr.Deref(c.Exporter.Stdout.Enabled, false))},
		{ExporterPrometheusEnabledFlag, fmt.Sprintf("%v", ptr.Deref(c.Exporter.Prometheus.Enabled, false))},
		{ExporterPrometheusDebugCollectors, strings.Join(c.Exporter.Prometheus.DebugCollectors, ", ")},
		{ExporterPrometheusMetricsFlag, c.Exporter.Prometheus.MetricsLevel.String()},
		{pprofEnabledFlag, fmt.Sprintf("%v", ptr.Deref(c.Debug.Pprof.Enabled, false))},
	}
	sb := strings.Builder{}
	for _, cfg := range cfgs {
		sb.WriteString(cfg.Name)
		sb.WriteString(": ")
		sb.WriteString(cfg.Value)
		sb.WriteString("\n")
	}
	return sb.String()
}
