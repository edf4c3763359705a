// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"maps"
	"time"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// SessionInfo describes the open session; it does not change between refreshes
type SessionInfo struct {
	Library              string
	LibraryVersion       ryzenadj.Version
	Family               ryzenadj.Family
	BIOSInterfaceVersion int
	TableVersion         uint32
	TableSize            int // bytes
}

// CoreValues maps per-core registers of one core to their readings
type CoreValues map[ryzenadj.CoreGetter]float64

// Snapshot is one sample of the PM table. Only finite readings are kept; a
// register that read NaN is absent from Values.
type Snapshot struct {
	Timestamp time.Time
	Session   SessionInfo

	Values map[ryzenadj.Getter]float64
	Cores  []CoreValues // indexed by core

	// Dropped counts the non-finite readings left out of this snapshot
	Dropped int
}

// NewSnapshot creates an empty snapshot for n cores
func NewSnapshot(cores int) *Snapshot {
	s := &Snapshot{
		Values: make(map[ryzenadj.Getter]float64),
		Cores:  make([]CoreValues, cores),
	}
	for i := range s.Cores {
		s.Cores[i] = make(CoreValues)
	}
	return s
}

// Value returns the reading of g and whether it was finite
func (s *Snapshot) Value(g ryzenadj.Getter) (float64, bool) {
	v, ok := s.Values[g]
	return v, ok
}

// CoreValue returns the reading of g for core and whether it was finite
func (s *Snapshot) CoreValue(g ryzenadj.CoreGetter, core int) (float64, bool) {
	if core < 0 || core >= len(s.Cores) {
		return 0, false
	}
	v, ok := s.Cores[core][g]
	return v, ok
}

// Clone returns a deep copy so callers cannot mutate the monitor's snapshot
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	ret := &Snapshot{
		Timestamp: s.Timestamp,
		Session:   s.Session,
		Values:    maps.Clone(s.Values),
		Cores:     make([]CoreValues, len(s.Cores)),
		Dropped:   s.Dropped,
	}
	for i, c := range s.Cores {
		ret.Cores[i] = maps.Clone(c)
	}
	return ret
}
