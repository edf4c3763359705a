// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockLib is a mock implementation of nativeLib for testing
type mockLib struct {
	mock.Mock
}

func (m *mockLib) Name() string {
	return "mock"
}

func (m *mockLib) Init() nativeAccess {
	args := m.Called()
	if a := args.Get(0); a != nil {
		return a.(nativeAccess)
	}
	return nil
}

func (m *mockLib) Cleanup(a nativeAccess) {
	m.Called(a)
}

func (m *mockLib) Version() Version {
	return Version{Major: 0, Minor: 16, Revision: 0}
}

// mockAccess is a mock implementation of nativeAccess for testing
type mockAccess struct {
	mock.Mock
}

func (m *mockAccess) InitTable() int {
	args := m.Called()
	return args.Int(0)
}

func (m *mockAccess) RefreshTable() int {
	args := m.Called()
	return args.Int(0)
}

func (m *mockAccess) TableVersion() uint32 {
	args := m.Called()
	return args.Get(0).(uint32)
}

func (m *mockAccess) TableSize() int {
	args := m.Called()
	return args.Int(0)
}

func (m *mockAccess) TableValues() *float32 {
	args := m.Called()
	if p := args.Get(0); p != nil {
		return p.(*float32)
	}
	return nil
}

func (m *mockAccess) BIOSInterfaceVersion() int {
	args := m.Called()
	return args.Int(0)
}

func (m *mockAccess) CPUFamily() int {
	args := m.Called()
	return args.Int(0)
}

func (m *mockAccess) Get(g Getter) float32 {
	args := m.Called(g)
	return args.Get(0).(float32)
}

func (m *mockAccess) GetCore(g CoreGetter, core uint32) float32 {
	args := m.Called(g, core)
	return args.Get(0).(float32)
}

func (m *mockAccess) Set(s Setter, value uint32) int {
	args := m.Called(s, value)
	return args.Int(0)
}

func (m *mockAccess) Control(c Control) int {
	args := m.Called(c)
	return args.Int(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMockSession opens a session over a mock access that initializes cleanly.
// Callers add their own expectations on access before exercising the session.
func newMockSession(t *testing.T) (*Session, *mockLib, *mockAccess) {
	t.Helper()

	access := &mockAccess{}
	access.On("InitTable").Return(0).Once()
	access.On("TableVersion").Return(uint32(0x400005)).Once()
	access.On("TableSize").Return(0).Once()

	lib := &mockLib{}
	lib.On("Init").Return(access).Once()
	lib.On("Cleanup", access).Return().Once()

	s, err := Open(withLibrary(lib), WithLogger(discardLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, lib, access
}
