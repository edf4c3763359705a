// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package device

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// SMU owns the process's ryzenadj session. The session is opened by Init and
// released by Shutdown; Session returns nil outside that window.
type SMU interface {
	Name() string
	Init() error
	Shutdown() error

	// Session returns the open session or nil
	Session() *ryzenadj.Session

	// Cores returns the number of cores whose per-core registers are sampled
	Cores() int
}

type opener func(...ryzenadj.OptionFn) (*ryzenadj.Session, error)

type smuDevice struct {
	logger      *slog.Logger
	baseLogger  *slog.Logger
	open        opener
	sessionOpts []ryzenadj.OptionFn
	procfs      string
	cpuinfo     cpuInfoReader
	fake        bool

	mu      sync.RWMutex
	cores   int
	session *ryzenadj.Session
}

var _ SMU = (*smuDevice)(nil)

type OptionFn func(*smuDevice)

// WithLogger sets the logger for the SMU device
func WithLogger(logger *slog.Logger) OptionFn {
	return func(d *smuDevice) {
		d.baseLogger = logger
		d.logger = logger.With("service", "smu")
	}
}

// WithProcFS sets the procfs mount used to detect the core count
func WithProcFS(path string) OptionFn {
	return func(d *smuDevice) {
		d.procfs = path
	}
}

// WithCores fixes the number of sampled cores; 0 detects it from procfs
func WithCores(n int) OptionFn {
	return func(d *smuDevice) {
		d.cores = n
	}
}

// WithFakeSMU backs the device with the in-process fake library.
// NOTE: not intended for production use
func WithFakeSMU(cores int) OptionFn {
	return func(d *smuDevice) {
		d.fake = true
		d.sessionOpts = append(d.sessionOpts, ryzenadj.WithFakeLibrary(ryzenadj.WithFakeCores(cores)))
		if d.cores == 0 {
			d.cores = cores
		}
	}
}

// withOpener replaces ryzenadj.Open (for testing)
func withOpener(fn opener) OptionFn {
	return func(d *smuDevice) {
		d.open = fn
	}
}

// withCPUInfo injects the cpuinfo source (for testing)
func withCPUInfo(r cpuInfoReader) OptionFn {
	return func(d *smuDevice) {
		d.cpuinfo = r
	}
}

// NewSMU creates an SMU device; nothing is opened until Init
func NewSMU(opts ...OptionFn) *smuDevice {
	d := &smuDevice{
		logger:     slog.Default().With("service", "smu"),
		baseLogger: slog.Default(),
		open:       ryzenadj.Open,
		procfs:     "/proc",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *smuDevice) Name() string {
	if d.fake {
		return "fake-smu"
	}
	return "smu"
}

func (d *smuDevice) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session != nil {
		return nil
	}

	if d.cores == 0 {
		n, err := d.detectCores()
		if err != nil {
			d.logger.Warn("core detection failed, sampling one core", "error", err)
			n = 1
		}
		d.cores = n
	}

	opts := append([]ryzenadj.OptionFn{ryzenadj.WithLogger(d.baseLogger)}, d.sessionOpts...)
	session, err := d.open(opts...)
	if err != nil {
		return fmt.Errorf("failed to open ryzenadj session: %w", err)
	}
	d.session = session

	family, err := session.CPUFamily()
	if err != nil {
		d.logger.Warn("CPU family not recognized", "error", err)
	}
	d.logger.Info("SMU ready",
		"library", session.Library(),
		"family", family.String(),
		"bios_if_version", session.BIOSInterfaceVersion(),
		"table_version", fmt.Sprintf("%#x", session.TableVersion()),
		"cores", d.cores)
	return nil
}

func (d *smuDevice) detectCores() (int, error) {
	if d.cpuinfo == nil {
		r, err := newCPUInfoReader(d.procfs)
		if err != nil {
			return 0, err
		}
		d.cpuinfo = r
	}
	return physicalCores(d.cpuinfo)
}

func (d *smuDevice) Shutdown() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session == nil {
		return nil
	}
	err := d.session.Close()
	d.session = nil
	return err
}

func (d *smuDevice) Session() *ryzenadj.Session {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.session
}

func (d *smuDevice) Cores() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cores
}
