// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"net/http/pprof"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/service"
)

// Profiler exposes the runtime profiles under /debug/pprof/ when debug.pprof is enabled
type Profiler struct {
	api APIService
}

var _ service.Initializer = (*Profiler)(nil)

func NewProfiler(api APIService) *Profiler {
	return &Profiler{api: api}
}

func (p *Profiler) Name() string {
	return "pprof"
}

func (p *Profiler) Init() error {
	return p.api.Register("/debug/pprof/", "pprof", "Profiling Data", profileHandlers())
}

// profileHandlers routes named profiles (heap, goroutine, ...) through pprof.Index
func profileHandlers() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
