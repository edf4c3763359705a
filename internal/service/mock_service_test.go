// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"sync"
)

// callLog records the order in which services are called across a test
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type mockService struct {
	name string
	log  *callLog
}

func (m *mockService) Name() string {
	return m.name
}

// mockInitShutdown implements Initializer and Shutdowner
type mockInitShutdown struct {
	mockService
	initErr     error
	shutdownErr error
}

func (m *mockInitShutdown) Init() error {
	m.log.add("init:" + m.name)
	return m.initErr
}

func (m *mockInitShutdown) Shutdown() error {
	m.log.add("shutdown:" + m.name)
	return m.shutdownErr
}

// mockRunner implements Runner and Shutdowner
type mockRunner struct {
	mockService
	runFn func(ctx context.Context) error
}

func (m *mockRunner) Run(ctx context.Context) error {
	m.log.add("run:" + m.name)
	if m.runFn != nil {
		return m.runFn(ctx)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockRunner) Shutdown() error {
	m.log.add("shutdown:" + m.name)
	return nil
}
