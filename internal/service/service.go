// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"log/slog"
)

// Service is the interface that all services must implement
type Service interface {
	Name() string
}

// Initializer is implemented by services that need to acquire resources
// (e.g. the SMU session) before anything runs
type Initializer interface {
	Service
	Init() error
}

// Runner is implemented by services that run in the background until the
// context is cancelled. Run must be safe to call from its own goroutine.
type Runner interface {
	Service
	Run(ctx context.Context) error
}

// Shutdowner is implemented by services that release resources on exit
type Shutdowner interface {
	Service
	Shutdown() error
}

// shutdown calls Shutdown on every service that implements it, last service first.
func shutdown(logger *slog.Logger, services []Service) []error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		s, ok := services[i].(Shutdowner)
		if !ok {
			continue
		}
		if err := s.Shutdown(); err != nil {
			logger.Warn("service shutdown failed", "service", s.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		logger.Debug("service shut down", "service", s.Name())
	}
	return errs
}
