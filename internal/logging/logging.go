// Package logging configures the process-wide slog logger for each run mode.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Mode int

const (
	// ModeTUI owns the terminal, so records go to a file or nowhere.
	ModeTUI Mode = iota
	// ModeServe logs JSON to stdout.
	ModeServe
	// ModeAsk logs warnings and errors to stderr.
	ModeAsk
)

// Level parses LOG_LEVEL style values. Unknown values give Info.
func Level(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs the default logger. The returned closer releases the log file, if any.
func Setup(mode Mode, debug bool, logFile string) (io.Closer, error) {
	lvl := Level(os.Getenv("LOG_LEVEL"))
	if debug {
		lvl = slog.LevelDebug
	}

	var (
		handler slog.Handler
		closer  io.Closer = nopCloser{}
	)

	switch mode {
	case ModeServe:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	case ModeAsk:
		if !debug {
			lvl = slog.LevelWarn
		}
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	default:
		if !debug || logFile == "" {
			handler = slog.NewTextHandler(io.Discard, nil)
			break
		}
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, err
		}
		closer = f
		handler = slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl})
	}

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
