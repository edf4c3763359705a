// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package stdout

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"k8s.io/utils/clock"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/service"
)

type (
	Runner     = service.Runner
	Shutdowner = service.Shutdowner
	Monitor    = monitor.TelemetryProvider
)

// Exporter periodically prints the telemetry snapshot as tables
type Exporter struct {
	logger   *slog.Logger
	monitor  Monitor
	out      io.WriteCloser
	clock    clock.WithTicker
	interval time.Duration
}

var (
	_ Runner     = (*Exporter)(nil)
	_ Shutdowner = (*Exporter)(nil)
)

type Opts struct {
	logger   *slog.Logger
	out      io.WriteCloser
	clock    clock.WithTicker
	interval time.Duration
}

// DefaultOpts returns a new Opts with defaults set
func DefaultOpts() Opts {
	return Opts{
		logger:   slog.Default(),
		out:      os.Stdout,
		clock:    clock.RealClock{},
		interval: 2 * time.Second,
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

func WithOutput(out io.WriteCloser) OptionFn {
	return func(o *Opts) {
		o.out = out
	}
}

func WithInterval(interval time.Duration) OptionFn {
	return func(o *Opts) {
		o.interval = interval
	}
}

func WithClock(c clock.WithTicker) OptionFn {
	return func(o *Opts) {
		o.clock = c
	}
}

func NewExporter(tm Monitor, applyOpts ...OptionFn) *Exporter {
	opts := DefaultOpts()
	for _, apply := range applyOpts {
		apply(&opts)
	}

	return &Exporter{
		logger:   opts.logger.With("service", "stdout"),
		monitor:  tm,
		out:      opts.out,
		clock:    opts.clock,
		interval: opts.interval,
	}
}

func (e *Exporter) Run(ctx context.Context) error {
	ticker := e.clock.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			snapshot, err := e.monitor.Snapshot()
			if err != nil {
				e.logger.Error("Failed to collect telemetry", "error", err)
				continue
			}
			write(e.out, snapshot)
		case <-ctx.Done():
			e.logger.Info("Exiting ticker")
			return nil
		}
	}
}

func write(out io.Writer, snapshot *monitor.Snapshot) {
	info := snapshot.Session
	_, _ = fmt.Fprintf(out, "%s  %s  family=%s  table=%#x\n",
		snapshot.Timestamp.Format(time.RFC3339), info.Library, info.Family, info.TableVersion)
	writeRegisters(out, snapshot)
	if len(snapshot.Cores) > 0 {
		writeCores(out, snapshot)
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// writeRegisters prints finite registers in table order
func writeRegisters(out io.Writer, snapshot *monitor.Snapshot) {
	rows := [][]string{}
	for _, g := range ryzenadj.Getters() {
		v, ok := snapshot.Value(g)
		if !ok {
			continue
		}
		info := g.Info()
		rows = append(rows, []string{info.Key(), formatValue(v), string(info.Unit)})
	}

	table := tablewriter.NewWriter(out)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Formatting.Alignment = tw.AlignRight
	})
	table.Header([]string{"Register", "Value", "Unit"})
	_ = table.Bulk(rows)
	_ = table.Render()
}

func writeCores(out io.Writer, snapshot *monitor.Snapshot) {
	getters := ryzenadj.CoreGetters()

	header := []string{"Core"}
	for _, g := range getters {
		info := g.Info()
		header = append(header, fmt.Sprintf("%s(%s)", info.Key(), info.Unit))
	}

	rows := make([][]string, 0, len(snapshot.Cores))
	for core := range snapshot.Cores {
		row := []string{strconv.Itoa(core)}
		for _, g := range getters {
			if v, ok := snapshot.CoreValue(g, core); ok {
				row = append(row, formatValue(v))
			} else {
				row = append(row, "-")
			}
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(out)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Formatting.Alignment = tw.AlignRight
	})
	table.Header(header)
	_ = table.Bulk(rows)
	_ = table.Render()
}

func (e *Exporter) Shutdown() error {
	return e.out.Close()
}

// Name implements service.Name
func (e *Exporter) Name() string {
	return "stdout"
}
