// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/ryzenadj"
)

// MockSource is a mock implementation of Source
type MockSource struct {
	mock.Mock
}

var _ Source = (*MockSource)(nil)

func (m *MockSource) Refresh() error {
	return m.Called().Error(0)
}

func (m *MockSource) Read(g ryzenadj.Getter) float32 {
	return m.Called(g).Get(0).(float32)
}

func (m *MockSource) ReadCore(g ryzenadj.CoreGetter, core uint32) float32 {
	return m.Called(g, core).Get(0).(float32)
}

func (m *MockSource) Library() string {
	return m.Called().String(0)
}

func (m *MockSource) LibraryVersion() ryzenadj.Version {
	return m.Called().Get(0).(ryzenadj.Version)
}

func (m *MockSource) CPUFamily() (ryzenadj.Family, error) {
	args := m.Called()
	return args.Get(0).(ryzenadj.Family), args.Error(1)
}

func (m *MockSource) BIOSInterfaceVersion() int {
	return m.Called().Int(0)
}

func (m *MockSource) TableVersion() uint32 {
	return m.Called().Get(0).(uint32)
}

func (m *MockSource) TableSize() int {
	return m.Called().Int(0)
}

// newMockSource returns a source with session metadata set; register reads
// are left to each test
func newMockSource() *MockSource {
	src := &MockSource{}
	src.On("Library").Return("mock")
	src.On("LibraryVersion").Return(ryzenadj.Version{Major: 0, Minor: 16})
	src.On("CPUFamily").Return(ryzenadj.FamilyRembrandt, nil)
	src.On("BIOSInterfaceVersion").Return(3)
	src.On("TableVersion").Return(uint32(0x450005))
	src.On("TableSize").Return(0x8f0)
	return src
}

// stubSMU is a device.SMU without a native session
type stubSMU struct {
	cores   int
	session *ryzenadj.Session
}

func (s *stubSMU) Name() string { return "stub-smu" }
func (s *stubSMU) Init() error { return nil }
func (s *stubSMU) Shutdown() error { return nil }
func (s *stubSMU) Session() *ryzenadj.Session { return s.session }
func (s *stubSMU) Cores() int { return s.cores }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
