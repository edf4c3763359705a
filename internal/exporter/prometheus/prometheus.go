// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package prometheus

import (
	"fmt"
	"log/slog"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sustainable-computing-io/ryzenadj-exporter/config"
	collector "github.com/sustainable-computing-io/ryzenadj-exporter/internal/exporter/prometheus/collector"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/service"
)

type (
	Initializer = service.Initializer
	Monitor     = monitor.TelemetryProvider
)

type APIRegistry interface {
	Register(endpoint, summary, description string, handler http.Handler) error
}

type Opts struct {
	logger          *slog.Logger
	debugCollectors map[string]bool
	collectors      map[string]prom.Collector
	procfs          string
	metricsLevel    config.Level
}

// DefaultOpts returns a new Opts with defaults set
func DefaultOpts() Opts {
	return Opts{
		logger: slog.Default(),
		debugCollectors: map[string]bool{
			"go": true,
		},
		collectors:   map[string]prom.Collector{},
		procfs:       "/proc",
		metricsLevel: config.MetricsLevelAll,
	}
}

// OptionFn is a function sets one or more options in Opts struct
type OptionFn func(*Opts)

// WithLogger sets the logger for the exporter
func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Opts) {
		o.logger = logger
	}
}

// WithDebugCollectors sets the debug collectors
func WithDebugCollectors(c []string) OptionFn {
	return func(o *Opts) {
		o.debugCollectors = make(map[string]bool)
		for _, name := range c {
			o.debugCollectors[name] = true
		}
	}
}

func WithProcFSPath(procfs string) OptionFn {
	return func(o *Opts) {
		o.procfs = procfs
	}
}

func WithCollectors(c map[string]prom.Collector) OptionFn {
	return func(o *Opts) {
		o.collectors = c
	}
}

func WithMetricsLevel(level config.Level) OptionFn {
	return func(o *Opts) {
		o.metricsLevel = level
	}
}

// Exporter exports SMU telemetry to Prometheus
type Exporter struct {
	logger          *slog.Logger
	monitor         Monitor
	registry        *prom.Registry
	server          APIRegistry
	debugCollectors map[string]bool
	collectors      map[string]prom.Collector
}

var _ Initializer = (*Exporter)(nil)

// NewExporter creates a new Exporter instance
func NewExporter(tm Monitor, s APIRegistry, applyOpts ...OptionFn) *Exporter {
	opts := DefaultOpts()
	for _, apply := range applyOpts {
		apply(&opts)
	}

	return &Exporter{
		monitor:         tm,
		server:          s,
		logger:          opts.logger.With("service", "prometheus"),
		debugCollectors: opts.debugCollectors,
		collectors:      opts.collectors,
		registry:        prom.NewRegistry(),
	}
}

func collectorForName(name string) (prom.Collector, error) {
	switch name {
	case "go":
		return collectors.NewGoCollector(), nil
	case "process":
		return collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), nil
	default:
		return nil, fmt.Errorf("unknown collector: %s", name)
	}
}

// CreateCollectors returns the collectors exported by default, keyed by name
func CreateCollectors(tm Monitor, applyOpts ...OptionFn) (map[string]prom.Collector, error) {
	opts := DefaultOpts()
	for _, apply := range applyOpts {
		apply(&opts)
	}

	collectors := map[string]prom.Collector{
		"build_info":   collector.NewBuildInfoCollector(),
		"session_info": collector.NewSessionInfoCollector(tm, opts.logger),
		"telemetry":    collector.NewTelemetryCollector(tm, opts.logger, opts.metricsLevel),
	}
	cpuInfoCollector, err := collector.NewCPUInfoCollector(opts.procfs)
	if err != nil {
		return nil, err
	}
	collectors["cpu_info"] = cpuInfoCollector
	return collectors, nil
}

func (e *Exporter) Init() error {
	e.logger.Info("Initializing Prometheus exporter")
	for c := range e.debugCollectors {
		collector, err := collectorForName(c)
		if err != nil {
			e.logger.Error("Error creating collector", "collector", c, "error", err)
			return err
		}
		e.logger.Info("Enabling debug collector", "collector", c)
		e.registry.MustRegister(collector)
	}

	for name, collector := range e.collectors {
		e.logger.Info("Enabling collector", "collector", name)
		e.registry.MustRegister(collector)
	}

	return e.server.Register("/metrics", "Metrics", "Prometheus metrics",
		promhttp.HandlerFor(
			e.registry,
			promhttp.HandlerOpts{
				EnableOpenMetrics: true,
				Registry:          e.registry,
			},
		))
}

// Name implements service.Name
func (e *Exporter) Name() string {
	return "prometheus"
}
