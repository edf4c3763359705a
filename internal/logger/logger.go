// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

var logLevel slog.Level

// New returns a logger writing to w. format is "text" or "json"; any other
// format panics, since config validation rejects it earlier.
func New(level, format string, w io.Writer) *slog.Logger {
	logLevel = parseLogLevel(level)
	return slog.New(handlerForFormat(format, logLevel, w))
}

func LogLevel() slog.Level {
	return logLevel
}

func handlerForFormat(format string, level slog.Level, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	switch format {
	case "json":
		return slog.NewJSONHandler(w, opts)
	case "text":
		opts.ReplaceAttr = shortSource
		return slog.NewTextHandler(w, opts)
	default:
		panic(fmt.Sprintf("invalid format: %s", format))
	}
}

// shortSource keeps the last two directories and the file name of the source
// location, e.g. internal/ryzenadj/session.go
func shortSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	src, ok := a.Value.Any().(*slog.Source)
	if !ok {
		return a
	}

	parts := strings.Split(filepath.ToSlash(src.File), "/")
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	src.File = filepath.Join(parts...)
	return a
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
