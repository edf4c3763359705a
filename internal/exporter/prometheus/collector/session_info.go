// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"fmt"
	"log/slog"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
)

// SessionInfoCollector exports a constant '1' labeled with the SMU session metadata
type SessionInfoCollector struct {
	provider TelemetryProvider
	logger   *slog.Logger

	infoDesc      *prom.Desc
	tableSizeDesc *prom.Desc
}

func NewSessionInfoCollector(provider TelemetryProvider, logger *slog.Logger) *SessionInfoCollector {
	return &SessionInfoCollector{
		provider: provider,
		logger:   logger.With("collector", "session_info"),
		infoDesc: prom.NewDesc(
			prom.BuildFQName(namespace, "session", "info"),
			"A metric with a constant '1' value labeled with the SMU session metadata",
			[]string{"library", "library_version", "cpu_family", "bios_if_version", "table_version"},
			nil,
		),
		tableSizeDesc: prom.NewDesc(
			prom.BuildFQName(namespace, "pm_table", "size_bytes"),
			"Size of the PM table",
			nil, nil,
		),
	}
}

func (c *SessionInfoCollector) Describe(ch chan<- *prom.Desc) {
	ch <- c.infoDesc
	ch <- c.tableSizeDesc
}

func (c *SessionInfoCollector) Collect(ch chan<- prom.Metric) {
	snapshot, err := c.provider.Snapshot()
	if err != nil {
		c.logger.Debug("no snapshot for session info", "error", err)
		return
	}

	info := snapshot.Session
	ch <- prom.MustNewConstMetric(
		c.infoDesc,
		prom.GaugeValue,
		1,
		info.Library,
		libraryVersion(info.LibraryVersion),
		info.Family.String(),
		strconv.Itoa(info.BIOSInterfaceVersion),
		fmt.Sprintf("%#x", info.TableVersion),
	)
	ch <- prom.MustNewConstMetric(c.tableSizeDesc, prom.GaugeValue, float64(info.TableSize))
}
