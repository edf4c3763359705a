// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// MockTelemetryProvider mocks the monitor for testing
type MockTelemetryProvider struct {
	mock.Mock
	dataCh chan struct{}
}

var _ TelemetryProvider = (*MockTelemetryProvider)(nil)

func NewMockTelemetryProvider() *MockTelemetryProvider {
	return &MockTelemetryProvider{dataCh: make(chan struct{}, 1)}
}

func (m *MockTelemetryProvider) Snapshot() (*monitor.Snapshot, error) {
	args := m.Called()
	s, _ := args.Get(0).(*monitor.Snapshot)
	return s, args.Error(1)
}

func (m *MockTelemetryProvider) DataChannel() <-chan struct{} {
	return m.dataCh
}

func (m *MockTelemetryProvider) RefreshErrors() uint64 {
	return m.Called().Get(0).(uint64)
}

func (m *MockTelemetryProvider) TriggerUpdate() {
	select {
	case m.dataCh <- struct{}{}:
	default:
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sampleSnapshot returns a snapshot of a two core Rembrandt part
func sampleSnapshot() *monitor.Snapshot {
	s := monitor.NewSnapshot(2)
	s.Timestamp = time.Unix(1700000000, 0)
	s.Session = monitor.SessionInfo{
		Library:              "fake-smu",
		LibraryVersion:       ryzenadj.Version{Major: 0, Minor: 16},
		Family:               ryzenadj.FamilyRembrandt,
		BIOSInterfaceVersion: 3,
		TableVersion:         0x450005,
		TableSize:            0x8f0,
	}
	s.Values[ryzenadj.StapmLimit] = 25
	s.Values[ryzenadj.GFXClock] = 1600
	s.Values[ryzenadj.CCLKBusyValue] = 50
	s.Values[ryzenadj.TctlTempValue] = 71.5
	s.Values[ryzenadj.VRMCurrentValue] = 30
	s.Cores[0][ryzenadj.CoreClock] = 4.5
	s.Cores[1][ryzenadj.CoreTemp] = 60
	s.Dropped = 1
	return s
}

// gather returns the gathered samples keyed by name{label="value",...}
func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			if len(m.GetLabel()) > 0 {
				key += "{"
				for i, l := range m.GetLabel() {
					if i > 0 {
						key += ","
					}
					key += l.GetName() + `="` + l.GetValue() + `"`
				}
				key += "}"
			}
			switch {
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			}
		}
	}
	return out
}
