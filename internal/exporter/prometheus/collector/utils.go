// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"regexp"
	"strings"
)

var (
	invalidMetricChars = regexp.MustCompile(`[^a-zA-Z0-9_:]`)
	validMetricChars   = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// SanitizeMetricName replaces invalid metric name characters with underscores
// and ensures the result is a valid Prometheus metric name.
func SanitizeMetricName(name string) string {
	name = invalidMetricChars.ReplaceAllString(name, "_")

	if !validMetricChars.MatchString(name) {
		name = "_" + name
	}

	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return name
}
