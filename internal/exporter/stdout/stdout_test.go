// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package stdout

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// MockMonitor mocks the Monitor interface
type MockMonitor struct {
	mock.Mock
}

func (m *MockMonitor) Snapshot() (*monitor.Snapshot, error) {
	args := m.Called()
	if s := args.Get(0); s != nil {
		return s.(*monitor.Snapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMonitor) DataChannel() <-chan struct{} {
	return m.Called().Get(0).(<-chan struct{})
}

func (m *MockMonitor) RefreshErrors() uint64 {
	return m.Called().Get(0).(uint64)
}

// syncBuffer is a WriteCloser safe to read while the exporter writes
type syncBuffer struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSnapshot() *monitor.Snapshot {
	s := monitor.NewSnapshot(2)
	s.Timestamp = time.Date(2025, 5, 15, 1, 1, 1, 0, time.UTC)
	s.Session = monitor.SessionInfo{Library: "fake-smu", Family: ryzenadj.FamilyRembrandt, TableVersion: 0x450005}
	s.Values[ryzenadj.StapmLimit] = 25
	s.Values[ryzenadj.TctlTempValue] = 71.25
	s.Cores[0][ryzenadj.CorePower] = 2.5
	s.Cores[1][ryzenadj.CoreTemp] = 60
	return s
}

func TestNewExporter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		mockMonitor := &MockMonitor{}
		exporter := NewExporter(mockMonitor)
		assert.Equal(t, "stdout", exporter.Name())
		assert.Same(t, mockMonitor, exporter.monitor)
		assert.Same(t, os.Stdout, exporter.out)
		assert.Equal(t, 2*time.Second, exporter.interval)
	})

	t.Run("custom options", func(t *testing.T) {
		exporter := NewExporter(&MockMonitor{},
			WithLogger(discardLogger()),
			WithOutput(os.Stderr),
			WithInterval(20*time.Second))
		assert.Same(t, os.Stderr, exporter.out)
		assert.Equal(t, 20*time.Second, exporter.interval)
	})
}

func TestWrite(t *testing.T) {
	buf := bytes.Buffer{}
	write(&buf, testSnapshot())
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "2025-05-15T01:01:01Z  fake-smu  family=Rembrandt  table=0x450005\n"))
	assert.Contains(t, out, "stapm-limit")
	assert.Contains(t, out, "25.000")
	assert.Contains(t, out, "tctl-temp-value")
	assert.Contains(t, out, "71.250")
	assert.NotContains(t, out, "fast-limit", "registers without a reading are skipped")

	// per-core table: missing readings are dashes
	assert.Contains(t, out, "2.500")
	assert.Contains(t, out, "60.000")
	assert.Contains(t, out, "-")
}

func TestWriteWithoutCores(t *testing.T) {
	s := testSnapshot()
	s.Cores = nil

	buf := bytes.Buffer{}
	write(&buf, s)
	assert.NotContains(t, buf.String(), "2.500")
}

func TestExporterRunShutdown(t *testing.T) {
	fakeClock := testingclock.NewFakeClock(time.Now())
	mockMonitor := &MockMonitor{}
	failed := make(chan struct{})
	mockMonitor.On("Snapshot").Return(nil, errors.New("SMU busy")).Run(func(mock.Arguments) {
		close(failed)
	}).Once()
	mockMonitor.On("Snapshot").Return(testSnapshot(), nil)

	out := &syncBuffer{}
	exporter := NewExporter(mockMonitor,
		WithLogger(discardLogger()),
		WithOutput(out),
		WithClock(fakeClock),
		WithInterval(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- exporter.Run(ctx) }()

	assert.Eventually(t, fakeClock.HasWaiters, time.Second, 5*time.Millisecond)
	fakeClock.Step(time.Second)

	// a failed snapshot does not stop the exporter
	select {
	case <-failed:
	case <-time.After(time.Second):
		t.Fatal("exporter did not tick")
	}
	fakeClock.Step(time.Second)
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "stapm-limit")
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.NoError(t, exporter.Shutdown())
	assert.True(t, out.closed)
}
