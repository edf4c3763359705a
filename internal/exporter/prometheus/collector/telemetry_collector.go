// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sustainable-computing-io/ryzenadj-exporter/config"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

const coreLabel = "core"

type TelemetryProvider = monitor.TelemetryProvider

type scaledDesc struct {
	desc  *prometheus.Desc
	scale float64
}

// TelemetryCollector exports one gauge per PM table register. All metrics of
// a scrape come from a single snapshot.
type TelemetryCollector struct {
	provider     TelemetryProvider
	logger       *slog.Logger
	metricsLevel config.Level

	mutex sync.RWMutex
	ready bool

	getters []ryzenadj.Getter
	values  map[ryzenadj.Getter]scaledDesc
	cores   map[ryzenadj.CoreGetter]scaledDesc

	refreshErrorsDesc *prometheus.Desc
	droppedDesc       *prometheus.Desc
	timestampDesc     *prometheus.Desc
}

func registerDesc(f ryzenadj.FieldInfo, labels []string) scaledDesc {
	name, scale := metricName(f)
	return scaledDesc{
		desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help(f), labels, nil),
		scale: scale,
	}
}

// NewTelemetryCollector creates a collector for the registers enabled by metricsLevel
func NewTelemetryCollector(provider TelemetryProvider, logger *slog.Logger, metricsLevel config.Level) *TelemetryCollector {
	c := &TelemetryCollector{
		provider:     provider,
		logger:       logger.With("collector", "telemetry"),
		metricsLevel: metricsLevel,
		values:       make(map[ryzenadj.Getter]scaledDesc),
		cores:        make(map[ryzenadj.CoreGetter]scaledDesc),

		refreshErrorsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pm_table", "refresh_errors_total"),
			"Number of failed PM table refreshes",
			nil, nil),
		droppedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pm_table", "dropped_readings"),
			"Number of registers that did not read a finite value in the last refresh",
			nil, nil),
		timestampDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pm_table", "refresh_timestamp_seconds"),
			"Unix time of the last PM table refresh",
			nil, nil),
	}

	for _, g := range ryzenadj.Getters() {
		if !metricsLevel.Includes(g.Info().Subsystem) {
			continue
		}
		c.getters = append(c.getters, g)
		c.values[g] = registerDesc(g.Info(), nil)
	}

	if metricsLevel.IsCoreEnabled() {
		for _, g := range ryzenadj.CoreGetters() {
			c.cores[g] = registerDesc(g.Info(), []string{coreLabel})
		}
	}

	go c.waitForData()

	return c
}

func (c *TelemetryCollector) waitForData() {
	<-c.provider.DataChannel()
	c.mutex.Lock()
	c.ready = true
	c.mutex.Unlock()
}

func (c *TelemetryCollector) isReady() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.ready
}

// Describe implements the prometheus.Collector interface
func (c *TelemetryCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range c.getters {
		ch <- c.values[g].desc
	}
	for _, g := range ryzenadj.CoreGetters() {
		if d, ok := c.cores[g]; ok {
			ch <- d.desc
		}
	}
	ch <- c.refreshErrorsDesc
	ch <- c.droppedDesc
	ch <- c.timestampDesc
}

// Collect implements the prometheus.Collector interface
func (c *TelemetryCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		c.refreshErrorsDesc,
		prometheus.CounterValue,
		float64(c.provider.RefreshErrors()),
	)

	if !c.isReady() {
		c.logger.Debug("Collect called before monitor is ready")
		return
	}

	started := time.Now()
	defer func() {
		c.logger.Debug("Collected telemetry", "duration", time.Since(started))
	}()

	snapshot, err := c.provider.Snapshot()
	if err != nil {
		c.logger.Error("Failed to collect telemetry", "error", err)
		return
	}

	for _, g := range c.getters {
		v, ok := snapshot.Value(g)
		if !ok {
			continue
		}
		d := c.values[g]
		ch <- prometheus.MustNewConstMetric(d.desc, prometheus.GaugeValue, v*d.scale)
	}

	for core := range snapshot.Cores {
		label := strconv.Itoa(core)
		for _, g := range ryzenadj.CoreGetters() {
			d, ok := c.cores[g]
			if !ok {
				continue
			}
			v, ok := snapshot.CoreValue(g, core)
			if !ok {
				continue
			}
			ch <- prometheus.MustNewConstMetric(d.desc, prometheus.GaugeValue, v*d.scale, label)
		}
	}

	ch <- prometheus.MustNewConstMetric(c.droppedDesc, prometheus.GaugeValue, float64(snapshot.Dropped))
	ch <- prometheus.MustNewConstMetric(c.timestampDesc, prometheus.GaugeValue,
		float64(snapshot.Timestamp.UnixNano())/1e9)
}
