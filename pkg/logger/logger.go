package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Loggers struct {
	DebugLogger *slog.Logger
	InfoLogger  *slog.Logger
	ErrorLogger *slog.Logger
}

// SetupLogger writes to stderr so that command output on stdout stays clean.
func SetupLogger(level string) (*Loggers, error) {
	return setupLogger(os.Stderr, level)
}

// Discard returns loggers that drop every record. Used by tests.
func Discard() *Loggers {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Loggers{DebugLogger: l, InfoLogger: l, ErrorLogger: l}
}

func setupLogger(w io.Writer, level string) (*Loggers, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	base := slog.New(handler)

	return &Loggers{
		DebugLogger: base.With("logger", "debug"),
		InfoLogger:  base.With("logger", "info"),
		ErrorLogger: base.With("logger", "error"),
	}, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
