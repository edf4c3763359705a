// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"strings"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// baseUnit is the Prometheus base unit a register is exported in
type baseUnit struct {
	suffix string
	scale  float64
}

var baseUnits = map[ryzenadj.Unit]baseUnit{
	ryzenadj.UnitNone:        {"", 1},
	ryzenadj.UnitWatt:        {"watts", 1},
	ryzenadj.UnitMilliwatt:   {"watts", 1e-3},
	ryzenadj.UnitAmpere:      {"amperes", 1},
	ryzenadj.UnitMilliampere: {"amperes", 1e-3},
	ryzenadj.UnitMegahertz:   {"hertz", 1e6},
	ryzenadj.UnitGigahertz:   {"hertz", 1e9},
	ryzenadj.UnitCelsius:     {"celsius", 1},
	ryzenadj.UnitVolt:        {"volts", 1},
	ryzenadj.UnitSecond:      {"seconds", 1},
	ryzenadj.UnitMillisecond: {"seconds", 1e-3},
	ryzenadj.UnitPercent:     {"ratio", 1e-2},
}

// metricName returns the metric name of a register without namespace, e.g.
// gfx_clk_hertz, and the factor converting readings into that unit
func metricName(f ryzenadj.FieldInfo) (string, float64) {
	unit, ok := baseUnits[f.Unit]
	if !ok {
		unit = baseUnit{"", 1}
	}

	name := SanitizeMetricName(strings.ToLower(f.Native))
	if unit.suffix != "" {
		name += "_" + unit.suffix
	}
	return name, unit.scale
}

// help appends the native unit so scaled values stay traceable
func help(f ryzenadj.FieldInfo) string {
	if f.Unit == ryzenadj.UnitNone {
		return f.Help
	}
	return f.Help + " (read in " + string(f.Unit) + ")"
}
