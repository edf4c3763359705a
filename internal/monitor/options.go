// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"log/slog"
	"time"

	"k8s.io/utils/clock"
)

type Opts struct {
	logger       *slog.Logger
	interval     time.Duration
	clock        clock.WithTicker
	maxStaleness time.Duration
	source       Source
}

// DefaultOpts returns Opts with defaults set
func DefaultOpts() Opts {
	return Opts{
		logger:       slog.Default(),
		interval:     0 * time.Second, // no collection
		clock:        clock.RealClock{},
		maxStaleness: 500 * time.Millisecond,
	}
}

// OptionFn is a function sets one or more options in Opts struct
type OptionFn func(*Opts)

// WithInterval sets the refresh interval of the monitor
func WithInterval(d time.Duration) OptionFn {
	return func(o *Opts) {
		o.interval = d
	}
}

// WithLogger sets the logger for the monitor
func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Opts) {
		o.logger = logger
	}
}

// WithClock sets the clock of the monitor
func WithClock(c clock.WithTicker) OptionFn {
	return func(o *Opts) {
		o.clock = c
	}
}

// WithMaxStaleness sets the age after which a snapshot is refreshed on demand
func WithMaxStaleness(d time.Duration) OptionFn {
	return func(o *Opts) {
		o.maxStaleness = d
	}
}

// WithSource samples s instead of the device's session
func WithSource(s Source) OptionFn {
	return func(o *Opts) {
		o.source = s
	}
}
