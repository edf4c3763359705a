// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/KimMachineGun/automemlimit"
	"github.com/alecthomas/kingpin/v2"
	_ "go.uber.org/automaxprocs"
	"golang.org/x/sys/unix"

	"github.com/sustainable-computing-io/ryzenadj-exporter/config"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/device"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/exporter/prometheus"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/exporter/stdout"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/limits"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/logger"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/monitor"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/server"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/service"
	"github.com/sustainable-computing-io/ryzenadj-exporter/internal/version"
)

func main() {
	// parse args and config and exit with error if there is an error
	cfg, err := parseArgsAndConfig()
	if err != nil {
		os.Exit(1)
	}
	logger := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	logVersionInfo(logger)
	printConfigInfo(logger, cfg)

	services, err := createServices(logger, cfg)
	if err != nil {
		logger.Error("failed to create services", "error", err)
		os.Exit(1)
	}

	if err := service.Init(logger, services); err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting ryzenadj-exporter")
	if err := service.Run(context.Background(), logger, services); err != nil {
		logger.Error("ryzenadj-exporter terminated with an error", "error", err)
		os.Exit(1)
	}
	logger.Info("Graceful shutdown completed")
}

func logVersionInfo(logger *slog.Logger) {
	v := version.Info()
	logger.Info("ryzenadj-exporter version information",
		"version", v.Version,
		"buildTime", v.BuildTime,
		"gitBranch", v.GitBranch,
		"gitCommit", v.GitCommit,
		"goVersion", v.GoVersion,
		"goOS", v.GoOS,
		"goArch", v.GoArch,
		"libryzenadj", v.Library,
	)
}

func parseArgsAndConfig() (*config.Config, error) {
	const appName = "ryzenadj-exporter"
	app := kingpin.New(appName, "AMD Ryzen SMU telemetry exporter for Prometheus.")
	app.Version(version.Info().String())

	configFile := app.Flag("config.file", "Path to YAML configuration file").String()
	updateConfig := config.RegisterFlags(app)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := logger.New("info", "text", os.Stdout)
	cfg := config.DefaultConfig()
	if *configFile != "" {
		logger.Info("Loading configuration file", "path", *configFile)
		loadedCfg, err := config.FromFile(*configFile)
		if err != nil {
			logger.Error("Error loading config file", "error", err.Error())
			return nil, err
		}
		cfg = loadedCfg
		logger.Info("Completed loading of configuration file", "path", *configFile)
	}

	// Apply command line flags (these override config file settings)
	if err := updateConfig(cfg); err != nil {
		logger.Error("Error applying command line flags", "error", err.Error())
		return nil, err
	}

	return cfg, nil
}

func printConfigInfo(logger *slog.Logger, cfg *config.Config) {
	if !logger.Enabled(context.Background(), slog.LevelInfo) || cfg.Log.Format == "json" {
		return
	}

	fmt.Printf(`
Configuration
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
%s
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
`, cfg)
}

func createServices(logger *slog.Logger, cfg *config.Config) ([]service.Service, error) {
	logger.Debug("Creating all services")

	smuOpts := []device.OptionFn{
		device.WithLogger(logger),
		device.WithProcFS(cfg.Host.ProcFS),
		device.WithCores(cfg.Monitor.Cores),
	}
	if *cfg.Dev.FakeSMU.Enabled {
		logger.Warn("using fake SMU; readings are synthetic")
		smuOpts = append(smuOpts, device.WithFakeSMU(cfg.Dev.FakeSMU.Cores))
	}
	smu := device.NewSMU(smuOpts...)

	limitValues, controls, err := limits.Parse(cfg.Limits.Values, cfg.Limits.Controls)
	if err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}
	applier := limits.NewApplier(smu,
		limits.WithLogger(logger),
		limits.WithLimits(limitValues...),
		limits.WithControls(controls...),
		limits.WithRetries(cfg.Limits.Retries, cfg.Limits.Backoff),
	)

	tm := monitor.NewTelemetryMonitor(smu,
		monitor.WithLogger(logger),
		monitor.WithInterval(cfg.Monitor.Interval),
		monitor.WithMaxStaleness(cfg.Monitor.Staleness),
	)

	apiServer := server.NewAPIServer(
		server.WithLogger(logger),
		server.WithListen(cfg.Web.ListenAddresses, cfg.Web.Config),
	)

	// NOTE: the session must be open before limits are written and the monitor binds to it
	services := []service.Service{
		smu,
		applier,
		tm,
		apiServer,
		server.NewProbe(apiServer, tm),
	}

	if *cfg.Exporter.Prometheus.Enabled {
		collectors, err := prometheus.CreateCollectors(tm,
			prometheus.WithLogger(logger),
			prometheus.WithProcFSPath(cfg.Host.ProcFS),
			prometheus.WithMetricsLevel(cfg.Exporter.Prometheus.MetricsLevel),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus collectors: %w", err)
		}

		services = append(services, prometheus.NewExporter(tm, apiServer,
			prometheus.WithLogger(logger),
			prometheus.WithDebugCollectors(cfg.Exporter.Prometheus.DebugCollectors),
			prometheus.WithCollectors(collectors),
		))
	}

	if *cfg.Exporter.Stdout.Enabled {
		services = append(services, stdout.NewExporter(tm,
			stdout.WithLogger(logger),
			stdout.WithInterval(cfg.Monitor.Interval),
		))
	}

	if *cfg.Debug.Pprof.Enabled {
		services = append(services, server.NewProfiler(apiServer))
	}

	services = append(services, service.NewSignalHandler(logger, unix.SIGINT, unix.SIGTERM))
	return services, nil
}
