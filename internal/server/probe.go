// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/service"
)

// Probe serves /probe/livez and /probe/readyz. The exporter is ready once the
// PM table can be refreshed; liveness does not touch the SMU.
type Probe struct {
	api     APIService
	monitor monitor.TelemetryProvider
}

var _ service.Initializer = (*Probe)(nil)

// NewProbe creates a new probe service that provides health check endpoints
func NewProbe(api APIService, tm monitor.TelemetryProvider) *Probe {
	return &Probe{api: api, monitor: tm}
}

func (p *Probe) Name() string {
	return "probe"
}

func (p *Probe) Init() error {
	return p.api.Register("/probe/", "probe", "Health check endpoints", p.handlers())
}

func (p *Probe) handlers() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /probe/readyz", p.readyz)
	mux.HandleFunc("GET /probe/livez", p.livez)
	return mux
}

type probeResponse struct {
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	Library       string `json:"library,omitempty"`
	Family        string `json:"family,omitempty"`
	TableVersion  string `json:"table_version,omitempty"`
	RefreshErrors uint64 `json:"refresh_errors"`
}

func (p *Probe) readyz(w http.ResponseWriter, _ *http.Request) {
	resp := probeResponse{RefreshErrors: p.monitor.RefreshErrors()}

	snapshot, err := p.monitor.Snapshot()
	if err != nil {
		resp.Status = "not ready"
		resp.Reason = err.Error()
		respond(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Status = "ok"
	resp.Library = snapshot.Session.Library
	resp.Family = snapshot.Session.Family.String()
	resp.TableVersion = fmt.Sprintf("%#x", snapshot.Session.TableVersion)
	respond(w, http.StatusOK, resp)
}

func (p *Probe) livez(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, probeResponse{Status: "alive", RefreshErrors: p.monitor.RefreshErrors()})
}

func respond(w http.ResponseWriter, code int, resp probeResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
