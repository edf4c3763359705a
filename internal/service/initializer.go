// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Init initializes services in order. If one fails, the services initialized
// before it are shut down in reverse order and all errors are returned joined.
func Init(logger *slog.Logger, services []Service) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	initialized := make([]Service, 0, len(services))
	for _, s := range services {
		srv, ok := s.(Initializer)
		if !ok {
			logger.Debug("skipping service initialization", "service", s.Name(),
				"reason", "service does not implement Initializer")
			continue
		}

		logger.Info("Initializing service", "service", s.Name())
		if err := srv.Init(); err != nil {
			initErr := fmt.Errorf("failed to initialize service %s: %w", s.Name(), err)
			logger.Info("Shutting down initialized services", "count", len(initialized))
			return errors.Join(append([]error{initErr}, shutdown(logger, initialized)...)...)
		}
		initialized = append(initialized, s)
	}
	return nil
}
