// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sustainable-computing-io/ryzenadj-exporter/config"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/exporter/prometheus/collector"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
)

// MetricInfo holds information about a Prometheus metric
type MetricInfo struct {
	Name        string
	Type        string
	Description string
	Labels      []string
	ConstLabels map[string]string
}

// stubProvider satisfies collector.TelemetryProvider; only descriptions are needed
type stubProvider struct {
	dataChan chan struct{}
}

func (m *stubProvider) DataChannel() <-chan struct{} {
	return m.dataChan
}

func (m *stubProvider) Snapshot() (*monitor.Snapshot, error) {
	return monitor.NewSnapshot(0), nil
}

func (m *stubProvider) RefreshErrors() uint64 {
	return 0
}

// DescCollector is a helper struct to collect metric descriptions
type DescCollector struct {
	descs []*prometheus.Desc
}

func (c *DescCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, desc := range c.descs {
		ch <- desc
	}
}

func (c *DescCollector) Collect(ch chan<- prometheus.Metric) {
	// Intentionally empty as we only care about descriptions
}

// extractMetricsInfo extracts metric information from a Prometheus collector
func extractMetricsInfo(collector prometheus.Collector) ([]MetricInfo, error) {
	ch := make(chan *prometheus.Desc, 100)
	collector.Describe(ch)
	close(ch)

	var metrics []MetricInfo
	fqNameRegex := regexp.MustCompile(`fqName: "([^"]+)"`)
	helpRegex := regexp.MustCompile(`help: "([^"]+)"`)
	variableLabelsRegex := regexp.MustCompile(`variableLabels: \{([^}]*)\}`)
	constLabelsRegex := regexp.MustCompile(`constLabels: \{([^}]*)\}`)

	for desc := range ch {
		descStr := desc.String()
		fqNameMatch := fqNameRegex.FindStringSubmatch(descStr)
		if len(fqNameMatch) < 2 {
			fmt.Printf("Warning: Could not parse fqName from: %s\n", descStr)
			continue
		}
		name := fqNameMatch[1]

		helpMatch := helpRegex.FindStringSubmatch(descStr)
		if len(helpMatch) < 2 {
			fmt.Printf("Warning: Could not parse help from: %s\n", descStr)
			continue
		}
		help := helpMatch[1]

		var labels []string
		variableLabelsMatch := variableLabelsRegex.FindStringSubmatch(descStr)
		if len(variableLabelsMatch) >= 2 && variableLabelsMatch[1] != "" {
			labelsStr := variableLabelsMatch[1]
			if labelsStr != "" {
				labels = strings.Split(labelsStr, ",")
				for i, label := range labels {
					labels[i] = strings.TrimSpace(label)
				}
			}
		}

		constLabels := make(map[string]string)
		constLabelsMatch := constLabelsRegex.FindStringSubmatch(descStr)
		if len(constLabelsMatch) >= 2 && constLabelsMatch[1] != "" {
			constLabelsStr := constLabelsMatch[1]
			// Parse const labels which are in format: labelName="labelValue"
			labelPairRegex := regexp.MustCompile(`(\w+)="([^"]*)"`)
			matches := labelPairRegex.FindAllStringSubmatch(constLabelsStr, -1)
			for _, match := range matches {
				if len(match) >= 3 {
					constLabels[match[1]] = match[2]
				}
			}
		}

		metricType := "GAUGE"
		if strings.HasSuffix(name, "_total") {
			metricType = "COUNTER"
		}

		metrics = append(metrics, MetricInfo{
			Name:        name,
			Type:        metricType,
			Description: help,
			Labels:      labels,
			ConstLabels: constLabels,
		})
	}

	return metrics, nil
}

// metricSection classifies a metric for the reference layout
func metricSection(m MetricInfo) string {
	switch {
	case slices.Contains(m.Labels, "core"):
		return "core"
	case strings.HasPrefix(m.Name, "ryzenadj_pm_table_"), strings.HasPrefix(m.Name, "ryzenadj_session_"):
		return "session"
	case strings.HasPrefix(m.Name, "ryzenadj_build_"), strings.HasPrefix(m.Name, "ryzenadj_cpu_"):
		return "other"
	default:
		return "register"
	}
}

// generateMarkdown generates Markdown documentation from metric information
func generateMarkdown(metrics []MetricInfo) string {
	var md strings.Builder
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Name < metrics[j].Name
	})

	md.WriteString("# RyzenAdj Exporter Metrics\n\n")
	md.WriteString("This document describes the metrics exported by ryzenadj-exporter from the SMU power management table of AMD Ryzen mobile processors.\n\n")
	md.WriteString("## Overview\n\n")
	md.WriteString("Register values are converted from their native unit to Prometheus base units; the native unit is kept in each metric's help text.\n")
	md.WriteString("Which registers are exported is controlled by `exporter.prometheus.metricsLevel`.\n\n")
	md.WriteString("### Metric Types\n\n")
	md.WriteString("- **COUNTER**: A cumulative metric that only increases over time\n")
	md.WriteString("- **GAUGE**: A metric that can increase and decrease\n\n")
	md.WriteString("## Metrics Reference\n\n")

	sections := map[string][]MetricInfo{}
	for _, metric := range metrics {
		s := metricSection(metric)
		sections[s] = append(sections[s], metric)
	}

	for _, s := range []struct{ key, title, summary string }{
		{"register", "Register Metrics", "Limits and readings from the PM table."},
		{"core", "Per-Core Metrics", "Per-core readings, labelled by core index."},
		{"session", "Session Metrics", "State of the SMU session and PM table refreshes."},
		{"other", "Other Metrics", "Build and host information."},
	} {
		if len(sections[s.key]) == 0 {
			continue
		}
		fmt.Fprintf(&md, "### %s\n\n%s\n\n", s.title, s.summary)
		writeMetricsSection(&md, sections[s.key])
	}

	md.WriteString("---\n\n")
	md.WriteString("This documentation was automatically generated by the gen-metric-docs tool.")
	md.WriteString("\n")
	return md.String()
}

// writeMetricsSection writes a section of metrics to the markdown builder
func writeMetricsSection(md *strings.Builder, metrics []MetricInfo) {
	for _, metric := range metrics {
		fmt.Fprintf(md, "#### %s\n\n", metric.Name)
		fmt.Fprintf(md, "- **Type**: %s\n", metric.Type)
		fmt.Fprintf(md, "- **Description**: %s\n", metric.Description)
		if len(metric.Labels) > 0 {
			md.WriteString("- **Labels**:\n")
			for _, label := range metric.Labels {
				fmt.Fprintf(md, "  - `%s`\n", label)
			}
		}
		if len(metric.ConstLabels) > 0 {
			md.WriteString("- **Constant Labels**:\n")
			// Sort constant labels for consistent output
			var keys []string
			for key := range metric.ConstLabels {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(md, "  - `%s`\n", key)
			}
		}
		md.WriteString("\n")
	}
}

func main() {
	outputPath := flag.String("output", "docs/metrics.md", "Path to output Markdown file")
	procfs := flag.String("procfs", "/proc", "procfs mount used by the cpu info collector")
	flag.Parse()

	fmt.Println("Starting ryzenadj-exporter metrics extractor...")

	provider := &stubProvider{dataChan: make(chan struct{})}
	close(provider.dataChan)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	collectors := map[string]prometheus.Collector{
		"telemetry":    collector.NewTelemetryCollector(provider, logger, config.MetricsLevelAll),
		"session info": collector.NewSessionInfoCollector(provider, logger),
		"build info":   collector.NewBuildInfoCollector(),
	}
	if cpuInfoCollector, err := collector.NewCPUInfoCollector(*procfs); err != nil {
		fmt.Printf("Warning: Could not create CPU info collector: %v\n", err)
	} else {
		collectors["cpu info"] = cpuInfoCollector
	}

	var allMetrics []MetricInfo
	for name, c := range collectors {
		metrics, err := extractMetricsInfo(c)
		if err != nil {
			fmt.Printf("Failed to extract %s metrics: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Extracted %d %s metrics\n", len(metrics), name)
		allMetrics = append(allMetrics, metrics...)
	}
	fmt.Printf("Total metrics extracted: %d\n", len(allMetrics))

	markdown := generateMarkdown(allMetrics)
	fmt.Printf("Writing metrics documentation to: %s\n", *outputPath)

	if dir := filepath.Dir(*outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("Failed to create output directory: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(*outputPath, []byte(markdown), 0644); err != nil {
		fmt.Printf("Failed to write markdown file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Metrics documentation generated successfully!")
}
