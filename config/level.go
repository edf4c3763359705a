// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// Level selects metric groups using bit patterns
type Level uint32

const (
	MetricsLevelPower   Level = 1 << iota // 1
	MetricsLevelCurrent                   // 2
	MetricsLevelClock                     // 4
	MetricsLevelThermal                   // 8
	MetricsLevelVoltage                   // 16
	MetricsLevelCore                      // 32

	// MetricsLevelAll represents all metric groups combined
	MetricsLevelAll = MetricsLevelPower | MetricsLevelCurrent | MetricsLevelClock |
		MetricsLevelThermal | MetricsLevelVoltage | MetricsLevelCore
)

var levelNames = []struct {
	level Level
	name  string
}{
	{MetricsLevelPower, "power"},
	{MetricsLevelCurrent, "current"},
	{MetricsLevelClock, "clock"},
	{MetricsLevelThermal, "thermal"},
	{MetricsLevelVoltage, "voltage"},
	{MetricsLevelCore, "core"},
}

func (l Level) names() []string {
	var levels []string
	for _, ln := range levelNames {
		if l&ln.level != 0 {
			levels = append(levels, ln.name)
		}
	}
	return levels
}

// String returns the string representation of the level
func (l Level) String() string {
	return strings.Join(l.names(), ",")
}

func (l Level) IsPowerEnabled() bool   { return l&MetricsLevelPower != 0 }
func (l Level) IsCurrentEnabled() bool { return l&MetricsLevelCurrent != 0 }
func (l Level) IsClockEnabled() bool   { return l&MetricsLevelClock != 0 }
func (l Level) IsThermalEnabled() bool { return l&MetricsLevelThermal != 0 }
func (l Level) IsVoltageEnabled() bool { return l&MetricsLevelVoltage != 0 }
func (l Level) IsCoreEnabled() bool    { return l&MetricsLevelCore != 0 }

// Includes reports whether registers of the given subsystem are exported.
func (l Level) Includes(s ryzenadj.Subsystem) bool {
	switch s {
	case ryzenadj.SubsystemPower:
		return l.IsPowerEnabled()
	case ryzenadj.SubsystemCurrent:
		return l.IsCurrentEnabled()
	case ryzenadj.SubsystemClock:
		return l.IsClockEnabled()
	case ryzenadj.SubsystemThermal:
		return l.IsThermalEnabled()
	case ryzenadj.SubsystemVoltage:
		return l.IsVoltageEnabled()
	case ryzenadj.SubsystemCore:
		return l.IsCoreEnabled()
	default:
		return false
	}
}

// ParseLevel parses a slice of strings into a Level
func ParseLevel(levels []string) (Level, error) {
	if len(levels) == 0 {
		return MetricsLevelAll, nil
	}

	var result Level
	for _, level := range levels {
		name := strings.ToLower(strings.TrimSpace(level))
		found := false
		for _, ln := range levelNames {
			if ln.name == name {
				result |= ln.level
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown metrics level: %s", level)
		}
	}

	return result, nil
}

// ValidLevels returns the list of valid metrics levels
func ValidLevels() []string {
	out := make([]string, 0, len(levelNames))
	for _, ln := range levelNames {
		out = append(out, ln.name)
	}
	return out
}

// MarshalYAML implements yaml.Marshaler interface
func (l Level) MarshalYAML() (interface{}, error) {
	levels := l.names()
	// a single level is written as a scalar
	if len(levels) == 1 {
		return levels[0], nil
	}
	return levels, nil
}

// UnmarshalYAML implements yaml.Unmarshaler interface
func (l *Level) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		parsed, parseErr := ParseLevel([]string{single})
		if parseErr != nil {
			return parseErr
		}
		*l = parsed
		return nil
	}

	var multiple []string
	if err := unmarshal(&multiple); err == nil {
		parsed, parseErr := ParseLevel(multiple)
		if parseErr != nil {
			return parseErr
		}
		*l = parsed
		return nil
	}

	return fmt.Errorf("cannot unmarshal metrics level: must be a string or array of strings")
}
