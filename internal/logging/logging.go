package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for LOG_FILE. Sizes are in megabytes, ages in days.
const (
	fileMaxSize    = 64
	fileMaxBackups = 7
	fileMaxAge     = 7
)

// New creates a *slog.Logger writing to stderr and optionally to logFile, in
// JSON unless format is "text". The log file is rotated by size. Every record
// carries service=officepantry. It also sets the logger as the slog default
// so package-level slog calls work. The returned cleanup func closes the log
// file if one was opened; callers must defer it.
func New(level, format, logFile string) (*slog.Logger, func(), error) {
	writers := []io.Writer{os.Stderr}
	cleanup := func() {}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    fileMaxSize,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAge,
		}
		writers = append(writers, rotator)
		cleanup = func() { _ = rotator.Close() }
	}

	logger := slog.New(newHandler(io.MultiWriter(writers...), level, format)).
		With("service", "officepantry")
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
