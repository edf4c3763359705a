// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainable-computing-io/ryzenadj-exporter/config"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/exporter/prometheus/collector"
)

// MockCollector implements prometheus.Collector for testing
type MockCollector struct {
	descs []*prometheus.Desc
}

func (c *MockCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, desc := range c.descs {
		ch <- desc
	}
}

func (c *MockCollector) Collect(ch chan<- prometheus.Metric) {
	// Empty implementation for testing
}

// TestExtractMetricsInfo tests the extractMetricsInfo function
func TestExtractMetricsInfo(t *testing.T) {
	tests := []struct {
		name               string
		descs              []*prometheus.Desc
		expectedMetricsLen int
		expectedMetrics    []MetricInfo
	}{
		{
			name: "ValidMetrics",
			descs: []*prometheus.Desc{
				prometheus.NewDesc("test_counter_total", "Test counter metric", []string{"label1", "label2"}, nil),
				prometheus.NewDesc("test_gauge", "Test gauge metric", []string{"label3"}, nil),
				prometheus.NewDesc("test_no_labels", "Test metric without labels", nil, nil),
			},
			expectedMetricsLen: 3,
			expectedMetrics: []MetricInfo{
				{
					Name:        "test_counter_total",
					Type:        "COUNTER",
					Description: "Test counter metric",
					Labels:      []string{"label1", "label2"},
					ConstLabels: map[string]string{},
				},
				{
					Name:        "test_gauge",
					Type:        "GAUGE",
					Description: "Test gauge metric",
					Labels:      []string{"label3"},
					ConstLabels: map[string]string{},
				},
				{
					Name:        "test_no_labels",
					Type:        "GAUGE",
					Description: "Test metric without labels",
					Labels:      nil,
					ConstLabels: map[string]string{},
				},
			},
		},
		{
			name: "MetricsWithConstLabels",
			descs: []*prometheus.Desc{
				prometheus.NewDesc("test_const_labels", "Test metric with constant labels", []string{"var_label"}, prometheus.Labels{"library": "fake-smu", "cpu_family": "Phoenix"}),
			},
			expectedMetricsLen: 1,
			expectedMetrics: []MetricInfo{
				{
					Name:        "test_const_labels",
					Type:        "GAUGE",
					Description: "Test metric with constant labels",
					Labels:      []string{"var_label"},
					ConstLabels: map[string]string{"library": "fake-smu", "cpu_family": "Phoenix"},
				},
			},
		},
		{
			name:               "EmptyCollector",
			descs:              []*prometheus.Desc{},
			expectedMetricsLen: 0,
			expectedMetrics:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCollector := &MockCollector{
				descs: tt.descs,
			}

			gotMetrics, err := extractMetricsInfo(mockCollector)
			assert.NoError(t, err)
			assert.Len(t, gotMetrics, tt.expectedMetricsLen)
			assert.Equal(t, tt.expectedMetrics, gotMetrics)
		})
	}
}

func TestMetricSection(t *testing.T) {
	tt := []struct {
		metric MetricInfo
		want   string
	}{
		{MetricInfo{Name: "ryzenadj_stapm_limit_watts"}, "register"},
		{MetricInfo{Name: "ryzenadj_core_clk_hertz", Labels: []string{"core"}}, "core"},
		{MetricInfo{Name: "ryzenadj_pm_table_refresh_errors_total"}, "session"},
		{MetricInfo{Name: "ryzenadj_session_info", Labels: []string{"library"}}, "session"},
		{MetricInfo{Name: "ryzenadj_build_info"}, "other"},
		{MetricInfo{Name: "ryzenadj_cpu_info", Labels: []string{"processor", "core_id"}}, "other"},
	}
	for _, tc := range tt {
		t.Run(tc.metric.Name, func(t *testing.T) {
			assert.Equal(t, tc.want, metricSection(tc.metric))
		})
	}
}

func TestGenerateMarkdown(t *testing.T) {
	tests := []struct {
		name        string
		metrics     []MetricInfo
		expected    []string
		notExpected []string
	}{{
		name: "register and core metrics",
		metrics: []MetricInfo{{
			Name:        "ryzenadj_stapm_limit_watts",
			Type:        "GAUGE",
			Description: "STAPM limit (read in mW)",
		}, {
			Name:        "ryzenadj_core_clk_hertz",
			Type:        "GAUGE",
			Description: "Core clock (read in GHz)",
			Labels:      []string{"core"},
		}},
		expected: []string{
			"# RyzenAdj Exporter Metrics",
			"### Register Metrics",
			"#### ryzenadj_stapm_limit_watts",
			"### Per-Core Metrics",
			"#### ryzenadj_core_clk_hertz",
			"- `core`",
		},
		notExpected: []string{"### Session Metrics", "### Other Metrics"},
	}, {
		name: "session metrics",
		metrics: []MetricInfo{{
			Name:        "ryzenadj_pm_table_refresh_errors_total",
			Type:        "COUNTER",
			Description: "PM table refreshes that failed",
		}},
		expected: []string{
			"### Session Metrics",
			"#### ryzenadj_pm_table_refresh_errors_total",
			"- **Type**: COUNTER",
		},
	}, {
		name:    "empty",
		metrics: []MetricInfo{},
		expected: []string{
			"## Overview",
			"### Metric Types",
			"## Metrics Reference",
		},
		notExpected: []string{"### Register Metrics"},
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := generateMarkdown(tc.metrics)
			for _, s := range tc.expected {
				assert.Contains(t, got, s)
			}
			for _, s := range tc.notExpected {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestGenerateMarkdownOrder(t *testing.T) {
	got := generateMarkdown([]MetricInfo{
		{Name: "ryzenadj_build_info", Type: "GAUGE"},
		{Name: "ryzenadj_stapm_limit_watts", Type: "GAUGE"},
		{Name: "ryzenadj_fast_limit_watts", Type: "GAUGE"},
	})

	fast := strings.Index(got, "#### ryzenadj_fast_limit_watts")
	stapm := strings.Index(got, "#### ryzenadj_stapm_limit_watts")
	build := strings.Index(got, "#### ryzenadj_build_info")
	assert.Less(t, fast, stapm)
	assert.Less(t, stapm, build, "register section comes before other metrics")
}

func TestWriteMetricsSection(t *testing.T) {
	var md strings.Builder
	writeMetricsSection(&md, []MetricInfo{{
		Name:        "ryzenadj_session_info",
		Type:        "GAUGE",
		Description: "SMU session information",
		Labels:      []string{"library", "cpu_family"},
		ConstLabels: map[string]string{"table_version": "0x4c0006", "bios_if_version": "3"},
	}, {
		Name:        "ryzenadj_pm_table_dropped_readings",
		Type:        "GAUGE",
		Description: "Readings dropped from the last refresh",
	}})
	output := md.String()

	assert.Contains(t, output, "#### ryzenadj_session_info")
	assert.Contains(t, output, "- **Description**: SMU session information")
	assert.Contains(t, output, "- `library`")
	assert.Contains(t, output, "- **Constant Labels**:\n  - `bios_if_version`\n  - `table_version`")
	assert.NotContains(t, output, "0x4c0006")

	dropped := output[strings.Index(output, "#### ryzenadj_pm_table_dropped_readings"):]
	assert.NotContains(t, dropped, "- **Labels**:")
}

func TestExtractFromCollectors(t *testing.T) {
	provider := &stubProvider{dataChan: make(chan struct{})}
	close(provider.dataChan)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	names := map[string]MetricInfo{}
	for _, c := range []prometheus.Collector{
		collector.NewTelemetryCollector(provider, logger, config.MetricsLevelAll),
		collector.NewSessionInfoCollector(provider, logger),
		collector.NewBuildInfoCollector(),
	} {
		metrics, err := extractMetricsInfo(c)
		require.NoError(t, err)
		for _, m := range metrics {
			names[m.Name] = m
		}
	}

	assert.Contains(t, names, "ryzenadj_stapm_limit_watts")
	assert.Contains(t, names, "ryzenadj_session_info")
	assert.Contains(t, names, "ryzenadj_build_info")
	assert.Equal(t, "COUNTER", names["ryzenadj_pm_table_refresh_errors_total"].Type)
	assert.Equal(t, []string{"core"}, names["ryzenadj_core_clk_hertz"].Labels)
}
