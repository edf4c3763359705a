// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/oklog/run"
)

// Run runs all Runner services in a run group until one of them returns or
// the context is cancelled. Each runner is shut down as its actor is
// interrupted; services that only implement Shutdowner (e.g. the session
// holder) are shut down after the group has stopped, in reverse order.
func Run(outer context.Context, logger *slog.Logger, services []Service) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	logger.Info("Running all services")
	ctx, cancel := context.WithCancel(outer)
	defer cancel()

	var g run.Group
	var passive []Service
	for _, s := range services {
		runner, ok := s.(Runner)
		if !ok {
			passive = append(passive, s)
			continue
		}

		g.Add(
			func() error {
				logger.Info("Running service", "service", runner.Name())
				return runner.Run(ctx)
			},
			func(err error) {
				cancel()
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("service terminated", "service", runner.Name(), "reason", err)
				}

				shutdowner, ok := runner.(Shutdowner)
				if !ok {
					return
				}
				logger.Info("shutting down", "service", runner.Name())
				if shutdownErr := shutdowner.Shutdown(); shutdownErr != nil {
					logger.Warn("service shutdown failed with error", "service", runner.Name(), "error", shutdownErr)
				}
			},
		)
	}

	err := g.Run()
	shutdown(logger, passive)
	return err
}
