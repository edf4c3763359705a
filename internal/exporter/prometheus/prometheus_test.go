// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package prometheus

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sustainable-computing-io/ryzenadj-exporter/config"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/device"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
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

// MockAPIRegistry mocks the APIRegistry interface
type MockAPIRegistry struct {
	mock.Mock
}

func (m *MockAPIRegistry) Register(endpoint, summary, description string, handler http.Handler) error {
	args := m.Called(endpoint, summary, description, handler)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewExporter(t *testing.T) {
	mockMonitor := &MockMonitor{}
	mockRegistry := &MockAPIRegistry{}

	exporter := NewExporter(mockMonitor, mockRegistry, WithLogger(discardLogger()))

	assert.Equal(t, "prometheus", exporter.Name())
	assert.NotNil(t, exporter.registry)
	assert.Same(t, mockMonitor, exporter.monitor)
	assert.Same(t, mockRegistry, exporter.server)
	assert.True(t, exporter.debugCollectors["go"])
}

func TestExporterInit(t *testing.T) {
	t.Run("registers /metrics", func(t *testing.T) {
		mockRegistry := &MockAPIRegistry{}
		mockRegistry.On("Register", "/metrics", "Metrics", "Prometheus metrics", mock.Anything).Return(nil)

		gauge := prom.NewGauge(prom.GaugeOpts{Name: "dummy"})
		exporter := NewExporter(&MockMonitor{}, mockRegistry,
			WithLogger(discardLogger()),
			WithDebugCollectors([]string{"go", "process"}),
			WithCollectors(map[string]prom.Collector{"dummy": gauge}))

		assert.NoError(t, exporter.Init())
		mockRegistry.AssertExpectations(t)
	})

	t.Run("registry returns error", func(t *testing.T) {
		mockRegistry := &MockAPIRegistry{}
		expectedErr := errors.New("register error")
		mockRegistry.On("Register", "/metrics", "Metrics", "Prometheus metrics", mock.Anything).Return(expectedErr)

		exporter := NewExporter(&MockMonitor{}, mockRegistry, WithLogger(discardLogger()))
		assert.Equal(t, expectedErr, exporter.Init())
	})

	t.Run("unknown debug collector", func(t *testing.T) {
		mockRegistry := &MockAPIRegistry{}
		exporter := NewExporter(&MockMonitor{}, mockRegistry,
			WithLogger(discardLogger()),
			WithDebugCollectors([]string{"unknown_collector"}))

		err := exporter.Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown collector: unknown_collector")
		mockRegistry.AssertNotCalled(t, "Register")
	})
}

func TestCollectorForName(t *testing.T) {
	for _, name := range []string{"go", "process"} {
		t.Run(name, func(t *testing.T) {
			c, err := collectorForName(name)
			require.NoError(t, err)
			assert.NoError(t, prom.NewRegistry().Register(c))
		})
	}

	c, err := collectorForName("unknown")
	assert.Nil(t, c)
	assert.ErrorContains(t, err, "unknown collector: unknown")
}

func TestWithOptions(t *testing.T) {
	opts := DefaultOpts()
	assert.Equal(t, "/proc", opts.procfs)
	assert.Equal(t, config.MetricsLevelAll, opts.metricsLevel)

	WithDebugCollectors([]string{"process"})(&opts)
	WithProcFSPath("/host/proc")(&opts)
	WithMetricsLevel(config.MetricsLevelPower)(&opts)

	assert.False(t, opts.debugCollectors["go"])
	assert.True(t, opts.debugCollectors["process"])
	assert.Equal(t, "/host/proc", opts.procfs)
	assert.Equal(t, config.MetricsLevelPower, opts.metricsLevel)
}

func TestCreateCollectors(t *testing.T) {
	mockMonitor := &MockMonitor{}
	mockMonitor.On("DataChannel").Return(make(<-chan struct{}))

	coll, err := CreateCollectors(mockMonitor, WithLogger(discardLogger()), WithProcFSPath("/proc"))
	require.NoError(t, err)
	assert.Len(t, coll, 4)
	for _, name := range []string{"build_info", "cpu_info", "session_info", "telemetry"} {
		assert.Contains(t, coll, name)
	}
}

// handlerCapture is an APIRegistry keeping the last registered handler
type handlerCapture struct {
	handler http.Handler
}

func (h *handlerCapture) Register(_, _, _ string, handler http.Handler) error {
	h.handler = handler
	return nil
}

func TestExporterServesFakeSMU(t *testing.T) {
	smu := device.NewSMU(device.WithLogger(discardLogger()), device.WithFakeSMU(2))
	require.NoError(t, smu.Init())
	t.Cleanup(func() { _ = smu.Shutdown() })

	tm := monitor.NewTelemetryMonitor(smu, monitor.WithLogger(discardLogger()))
	require.NoError(t, tm.Init())

	coll, err := CreateCollectors(tm, WithLogger(discardLogger()))
	require.NoError(t, err)

	capture := &handlerCapture{}
	exporter := NewExporter(tm, capture,
		WithLogger(discardLogger()),
		WithDebugCollectors(nil),
		WithCollectors(coll))
	require.NoError(t, exporter.Init())
	require.NotNil(t, capture.handler)

	var families map[string]*dto.MetricFamily
	require.Eventually(t, func() bool {
		families = scrape(t, capture.handler)
		_, ok := families["ryzenadj_stapm_limit_watts"]
		return ok
	}, time.Second, 10*time.Millisecond)

	for _, name := range []string{
		"ryzenadj_build_info",
		"ryzenadj_session_info",
		"ryzenadj_pm_table_refresh_errors_total",
	} {
		assert.Contains(t, families, name)
	}

	assert.Equal(t, dto.MetricType_COUNTER, families["ryzenadj_pm_table_refresh_errors_total"].GetType())
	assert.Equal(t, "fake-smu", labelValue(families["ryzenadj_session_info"].GetMetric()[0], "library"))

	coreClock := families["ryzenadj_core_clk_hertz"]
	require.NotNil(t, coreClock)
	var cores []string
	for _, m := range coreClock.GetMetric() {
		cores = append(cores, labelValue(m, "core"))
	}
	assert.ElementsMatch(t, []string{"0", "1"}, cores)
}

// scrape requests delimited protobuf from h and decodes every metric family
func scrape(t *testing.T, h http.Handler) map[string]*dto.MetricFamily {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeProtoDelim)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	decoder := expfmt.NewDecoder(rec.Body, expfmt.ResponseFormat(rec.Header()))
	families := map[string]*dto.MetricFamily{}
	for {
		var mf dto.MetricFamily
		if err := decoder.Decode(&mf); err != nil {
			require.ErrorIs(t, err, io.EOF)
			return families
		}
		families[mf.GetName()] = &mf
	}
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}
