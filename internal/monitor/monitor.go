// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"k8s.io/utils/clock"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/device"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/service"
)

// Source is the part of *ryzenadj.Session the monitor samples
type Source interface {
	Refresh() error
	Read(g ryzenadj.Getter) float32
	ReadCore(g ryzenadj.CoreGetter, core uint32) float32

	Library() string
	LibraryVersion() ryzenadj.Version
	CPUFamily() (ryzenadj.Family, error)
	BIOSInterfaceVersion() int
	TableVersion() uint32
	TableSize() int
}

var _ Source = (*ryzenadj.Session)(nil)

type TelemetryProvider interface {
	// Snapshot returns the current telemetry
	Snapshot() (*Snapshot, error)

	// DataChannel returns a channel that signals when new data is available
	DataChannel() <-chan struct{}

	// RefreshErrors returns the number of failed PM table refreshes
	RefreshErrors() uint64
}

// Service defines the interface for the telemetry monitoring service
type Service interface {
	service.Service
	TelemetryProvider
}

var errNoSession = errors.New("SMU session is not open")

// TelemetryMonitor refreshes the PM table periodically and on demand
type TelemetryMonitor struct {
	logger *slog.Logger
	smu    device.SMU
	source Source

	interval     time.Duration
	clock        clock.WithTicker
	maxStaleness time.Duration

	cores int
	info  SessionInfo

	// signals when a snapshot has been updated
	dataCh chan struct{}

	computeGroup  singleflight.Group
	snapshot      atomic.Pointer[Snapshot]
	refreshErrors atomic.Uint64

	collectionCtx    context.Context
	collectionCancel context.CancelFunc
}

var _ Service = (*TelemetryMonitor)(nil)

// NewTelemetryMonitor creates a monitor sampling the session owned by smu
func NewTelemetryMonitor(smu device.SMU, applyOpts ...OptionFn) *TelemetryMonitor {
	opts := DefaultOpts()
	for _, apply := range applyOpts {
		apply(&opts)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TelemetryMonitor{
		logger:           opts.logger.With("service", "monitor"),
		smu:              smu,
		source:           opts.source,
		clock:            opts.clock,
		interval:         opts.interval,
		maxStaleness:     opts.maxStaleness,
		dataCh:           make(chan struct{}, 1),
		collectionCtx:    ctx,
		collectionCancel: cancel,
	}
}

func (tm *TelemetryMonitor) Name() string {
	return "monitor"
}

// Init binds the monitor to the open session; the SMU must be initialized first
func (tm *TelemetryMonitor) Init() error {
	if tm.source == nil {
		session := tm.smu.Session()
		if session == nil {
			return errNoSession
		}
		tm.source = session
	}
	tm.cores = tm.smu.Cores()

	family, err := tm.source.CPUFamily()
	if err != nil {
		tm.logger.Warn("unknown CPU family", "error", err)
	}
	tm.info = SessionInfo{
		Library:              tm.source.Library(),
		LibraryVersion:       tm.source.LibraryVersion(),
		Family:               family,
		BIOSInterfaceVersion: tm.source.BIOSInterfaceVersion(),
		TableVersion:         tm.source.TableVersion(),
		TableSize:            tm.source.TableSize(),
	}

	// signal now so that exporters can construct descriptors
	tm.signalNewData()
	return nil
}

func (tm *TelemetryMonitor) signalNewData() {
	select {
	case tm.dataCh <- struct{}{}:
		tm.logger.Debug("Data channel updated")
	default:
		tm.logger.Debug("Data channel is full")
	}
}

func (tm *TelemetryMonitor) Run(ctx context.Context) error {
	tm.logger.Info("Monitor is running...")
	tm.collectionLoop()
	<-ctx.Done()
	tm.collectionCancel()
	tm.logger.Info("Monitor has terminated.")
	return nil
}

func (tm *TelemetryMonitor) Shutdown() error {
	tm.logger.Info("shutting down monitor")
	tm.collectionCancel()
	return nil
}

func (tm *TelemetryMonitor) DataChannel() <-chan struct{} {
	return tm.dataCh
}

func (tm *TelemetryMonitor) RefreshErrors() uint64 {
	return tm.refreshErrors.Load()
}

func (tm *TelemetryMonitor) Snapshot() (*Snapshot, error) {
	if err := tm.ensureFreshData(); err != nil {
		return nil, err
	}

	snapshot := tm.snapshot.Load()
	if snapshot == nil {
		return nil, fmt.Errorf("failed to get snapshot")
	}
	return snapshot.Clone(), nil
}

// collectionLoop handles periodic data collection
func (tm *TelemetryMonitor) collectionLoop() {
	if err := tm.synchronizedRefresh(); err != nil {
		tm.logger.Error("Failed to collect initial telemetry", "error", err)
	}

	if tm.interval > 0 {
		tm.scheduleNextCollection()
	}
}

func (tm *TelemetryMonitor) scheduleNextCollection() {
	timer := tm.clock.After(tm.interval)
	go func() {
		select {
		case <-timer:
			if err := tm.synchronizedRefresh(); err != nil {
				tm.logger.Error("Failed to collect telemetry", "error", err)
			}
			tm.scheduleNextCollection()

		case <-tm.collectionCtx.Done():
			tm.logger.Info("Collection loop terminated")
			return
		}
	}()
}

// ensureFreshData ensures that the data returned is recent enough (< maxStaleness)
func (tm *TelemetryMonitor) ensureFreshData() error {
	if tm.isFresh() {
		return nil
	}
	return tm.synchronizedRefresh()
}

// synchronizedRefresh takes a new snapshot while ensuring that only one
// goroutine talks to the SMU at a time. Freshness is checked again inside the
// group since a concurrent caller may have refreshed while this one waited.
func (tm *TelemetryMonitor) synchronizedRefresh() error {
	_, err, _ := tm.computeGroup.Do("refresh", func() (any, error) {
		if tm.isFresh() {
			return nil, nil
		}
		return nil, tm.refreshSnapshot()
	})
	return err
}

func (tm *TelemetryMonitor) isFresh() bool {
	snapshot := tm.snapshot.Load()
	if snapshot == nil || snapshot.Timestamp.IsZero() {
		return false
	}

	age := tm.clock.Now().Sub(snapshot.Timestamp)
	return age <= tm.maxStaleness
}

func (tm *TelemetryMonitor) refreshSnapshot() error {
	if tm.source == nil {
		return errNoSession
	}

	started := tm.clock.Now()
	if err := tm.source.Refresh(); err != nil {
		tm.refreshErrors.Add(1)
		return fmt.Errorf("failed to refresh PM table: %w", err)
	}

	snapshot := NewSnapshot(tm.cores)
	snapshot.Session = tm.info

	for _, g := range ryzenadj.Getters() {
		v, err := ryzenadj.Finite(tm.source.Read(g))
		if err != nil {
			snapshot.Dropped++
			continue
		}
		snapshot.Values[g] = float64(v)
	}

	for core := range tm.cores {
		for _, g := range ryzenadj.CoreGetters() {
			v, err := ryzenadj.Finite(tm.source.ReadCore(g, uint32(core)))
			if err != nil {
				snapshot.Dropped++
				continue
			}
			snapshot.Cores[core][g] = float64(v)
		}
	}

	snapshot.Timestamp = tm.clock.Now()
	tm.snapshot.Store(snapshot)
	tm.signalNewData()
	tm.logger.Debug("refreshed telemetry",
		"duration", tm.clock.Since(started),
		"values", len(snapshot.Values),
		"dropped", snapshot.Dropped)
	return nil
}
