// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

import (
	"fmt"
	"math"
	"unsafe"
)

var nan = float32(math.NaN())

// Read returns the current value of a telemetry register. Values come from the
// PM table as of the last Refresh. A closed session reads NaN.
func (s *Session) Read(g Getter) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !g.Valid() {
		return nan
	}
	return s.access.Get(g)
}

// ReadCore returns a per-core telemetry value. The core index is passed to the
// native library unchecked.
func (s *Session) ReadCore(g CoreGetter, core uint32) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !g.Valid() {
		return nan
	}
	return s.access.GetCore(g, core)
}

// Write sends a new limit to the SMU. The change takes effect on live hardware.
func (s *Session) Write(st Setter, value uint32) error {
	if !st.Valid() {
		return fmt.Errorf("ryzenadj: invalid setter %d", int(st))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	return Classify(s.access.Set(st, value))
}

// Control sends a value-less SMU command.
func (s *Session) Control(c Control) error {
	if !c.Valid() {
		return fmt.Errorf("ryzenadj: invalid control %d", int(c))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	return Classify(s.access.Control(c))
}

// Refresh re-reads the PM table from the SMU. Any slice returned by TableValues
// is overwritten in place.
func (s *Session) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if code := s.access.RefreshTable(); code != 0 {
		return &RefreshError{Code: code}
	}
	return nil
}

func (s *Session) TableVersion() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	return s.access.TableVersion()
}

// TableSize is the PM table size in bytes.
func (s *Session) TableSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	return s.access.TableSize()
}

func (s *Session) BIOSInterfaceVersion() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	return s.access.BIOSInterfaceVersion()
}

// CPUFamily returns the detected processor family.
func (s *Session) CPUFamily() (Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return FamilyUnknown, ErrSessionClosed
	}
	return familyFromCode(s.access.CPUFamily())
}

// TableValues returns a view over the live PM table buffer spanning TableSize
// bytes. The view is owned by the native library: it changes on Refresh and
// must not be used after Close. Use TableSnapshot for a stable copy.
func (s *Session) TableValues() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	return s.tableView()
}

// TableSnapshot returns a copy of the PM table.
func (s *Session) TableSnapshot() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	view := s.tableView()
	if view == nil {
		return nil
	}
	out := make([]float32, len(view))
	copy(out, view)
	return out
}

func (s *Session) tableView() []float32 {
	ptr := s.access.TableValues()
	n := s.access.TableSize() / int(unsafe.Sizeof(float32(0)))
	if ptr == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(ptr, n)
}
