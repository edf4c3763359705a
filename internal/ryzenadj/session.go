// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// active guards the SMU mailbox: libryzenadj holds process-wide state, so only
// one session may be open at a time.
var active atomic.Bool

// Opts configures a Session
type Opts struct {
	logger *slog.Logger
	lib    nativeLib
}

// DefaultOpts returns the default options
func DefaultOpts() Opts {
	return Opts{
		logger: slog.Default(),
		lib:    defaultLibrary(),
	}
}

// OptionFn is a function sets one or more options in Opts struct
type OptionFn func(*Opts)

// WithLogger sets the logger for the session
func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Opts) {
		o.logger = logger
	}
}

// WithFakeLibrary backs the session with an in-process simulated SMU instead of
// libryzenadj. Intended for development only.
func WithFakeLibrary(opts ...FakeOptionFn) OptionFn {
	return func(o *Opts) {
		o.lib = newFakeLib(opts...)
	}
}

// withLibrary overrides the native library, used by tests
func withLibrary(lib nativeLib) OptionFn {
	return func(o *Opts) {
		o.lib = lib
	}
}

// Session owns one libryzenadj handle with an initialized PM table. Calls are
// serialized; a Session is safe for concurrent use but must not be copied.
type Session struct {
	mu     sync.Mutex
	logger *slog.Logger
	lib    nativeLib
	access nativeAccess
	closed bool

	rel     *releaser
	cleanup runtime.Cleanup
}

// releaser frees the native handle exactly once, whether from Close or from the
// runtime cleanup of an unreachable Session. It must not reference the Session.
type releaser struct {
	once   sync.Once
	lib    nativeLib
	access nativeAccess
	logger *slog.Logger
}

func (r *releaser) release() {
	r.once.Do(func() {
		r.lib.Cleanup(r.access)
		active.Store(false)
		r.logger.Info("session released")
	})
}

// Open initializes libryzenadj and its PM table. On table failure the handle is
// cleaned up before returning.
func Open(applyOpts ...OptionFn) (*Session, error) {
	opts := DefaultOpts()
	for _, apply := range applyOpts {
		apply(&opts)
	}
	logger := opts.logger.With("service", "ryzenadj")

	if !active.CompareAndSwap(false, true) {
		return nil, ErrSessionActive
	}

	access := opts.lib.Init()
	if access == nil {
		active.Store(false)
		logger.Error("failed to initialize native library", "library", opts.lib.Name())
		return nil, ErrInitializationFailed
	}

	if code := access.InitTable(); code != 0 {
		opts.lib.Cleanup(access)
		active.Store(false)
		logger.Error("failed to initialize PM table", "library", opts.lib.Name(), "code", code)
		return nil, &Error{Kind: KindTableInitializationFailed, Code: code}
	}

	s := &Session{
		logger: logger,
		lib:    opts.lib,
		access: access,
		rel: &releaser{
			lib:    opts.lib,
			access: access,
			logger: logger,
		},
	}
	s.cleanup = runtime.AddCleanup(s, func(r *releaser) { r.release() }, s.rel)

	logger.Info("session opened",
		"library", opts.lib.Name(),
		"version", opts.lib.Version().String(),
		"table-version", access.TableVersion(),
		"table-size", access.TableSize())
	return s, nil
}

// Close releases the native handle. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.cleanup.Stop()
	s.rel.release()
	return nil
}

// Library returns the name of the backing native library.
func (s *Session) Library() string {
	return s.lib.Name()
}

// LibraryVersion returns the version of the backing native library.
func (s *Session) LibraryVersion() Version {
	return s.lib.Version()
}
