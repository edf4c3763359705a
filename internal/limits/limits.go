// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package limits

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"k8s.io/utils/clock"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/device"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// Writer is the part of *ryzenadj.Session used to apply limits
type Writer interface {
	Write(s ryzenadj.Setter, value uint32) error
	Control(c ryzenadj.Control) error
}

var _ Writer = (*ryzenadj.Session)(nil)

// Limit is one register write in the register's native unit
type Limit struct {
	Setter ryzenadj.Setter
	Value  uint32
}

func (l Limit) String() string {
	return fmt.Sprintf("%s=%d", l.Setter.Info().Key(), l.Value)
}

// Parse resolves configured names into limits and controls. Limits are
// returned in register order so that they are always applied the same way.
func Parse(values map[string]uint32, controls []string) ([]Limit, []ryzenadj.Control, error) {
	var errs []error

	limits := make([]Limit, 0, len(values))
	for name, v := range values {
		s, err := ryzenadj.ParseSetter(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		limits = append(limits, Limit{Setter: s, Value: v})
	}
	sort.Slice(limits, func(i, j int) bool { return limits[i].Setter < limits[j].Setter })

	ctrls := make([]ryzenadj.Control, 0, len(controls))
	for _, name := range controls {
		c, err := ryzenadj.ParseControl(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ctrls = append(ctrls, c)
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return limits, ctrls, nil
}

type Opts struct {
	logger   *slog.Logger
	clock    clock.Clock
	limits   []Limit
	controls []ryzenadj.Control
	retries  int
	backoff  time.Duration
	writer   Writer
}

// DefaultOpts returns Opts with defaults set
func DefaultOpts() Opts {
	return Opts{
		logger:  slog.Default(),
		clock:   clock.RealClock{},
		retries: 3,
		backoff: 100 * time.Millisecond,
	}
}

// OptionFn is a function sets one or more options in Opts struct
type OptionFn func(*Opts)

// WithLogger sets the logger for the applier
func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Opts) {
		o.logger = logger
	}
}

// WithClock sets the clock used between retries
func WithClock(c clock.Clock) OptionFn {
	return func(o *Opts) {
		o.clock = c
	}
}

// WithLimits sets the register writes to apply
func WithLimits(limits ...Limit) OptionFn {
	return func(o *Opts) {
		o.limits = limits
	}
}

// WithControls sets the commands sent before any limit is written
func WithControls(controls ...ryzenadj.Control) OptionFn {
	return func(o *Opts) {
		o.controls = controls
	}
}

// WithRetries sets how often a write is retried after an SMU timeout and the
// base delay; the n-th retry waits n times backoff
func WithRetries(retries int, backoff time.Duration) OptionFn {
	return func(o *Opts) {
		o.retries = retries
		o.backoff = backoff
	}
}

// WithWriter writes to w instead of the device's session
func WithWriter(w Writer) OptionFn {
	return func(o *Opts) {
		o.writer = w
	}
}

// Applier writes the configured limits once at startup
type Applier struct {
	logger   *slog.Logger
	clock    clock.Clock
	smu      device.SMU
	writer   Writer
	limits   []Limit
	controls []ryzenadj.Control
	retries  int
	backoff  time.Duration
}

// NewApplier creates an Applier writing through the session owned by smu
func NewApplier(smu device.SMU, applyOpts ...OptionFn) *Applier {
	opts := DefaultOpts()
	for _, apply := range applyOpts {
		apply(&opts)
	}

	return &Applier{
		logger:   opts.logger.With("service", "limits"),
		clock:    opts.clock,
		smu:      smu,
		writer:   opts.writer,
		limits:   opts.limits,
		controls: opts.controls,
		retries:  opts.retries,
		backoff:  opts.backoff,
	}
}

func (a *Applier) Name() string {
	return "limits"
}

// Init applies controls in the configured order and then every limit. The
// first write that still fails after retrying aborts startup.
func (a *Applier) Init() error {
	if len(a.limits) == 0 && len(a.controls) == 0 {
		a.logger.Debug("no limits configured")
		return nil
	}

	if a.writer == nil {
		session := a.smu.Session()
		if session == nil {
			return fmt.Errorf("SMU session is not open")
		}
		a.writer = session
	}

	for _, c := range a.controls {
		if err := a.withRetry(func() error { return a.writer.Control(c) }); err != nil {
			return fmt.Errorf("failed to send %s: %w", c.Info().Key(), err)
		}
		a.logger.Info("control sent", "control", c.Info().Key())
	}

	for _, l := range a.limits {
		if err := a.withRetry(func() error { return a.writer.Write(l.Setter, l.Value) }); err != nil {
			return fmt.Errorf("failed to set %s: %w", l, err)
		}
		info := l.Setter.Info()
		a.logger.Info("limit applied", "limit", info.Key(), "value", l.Value, "unit", string(info.Unit))
	}
	return nil
}

// withRetry retries fn while the SMU times out
func (a *Applier) withRetry(fn func() error) error {
	err := fn()
	for attempt := 1; attempt <= a.retries && errors.Is(err, ryzenadj.ErrSMUTimeout); attempt++ {
		delay := time.Duration(attempt) * a.backoff
		a.logger.Warn("SMU timed out, retrying", "attempt", attempt, "delay", delay)
		a.clock.Sleep(delay)
		err = fn()
	}
	return err
}
