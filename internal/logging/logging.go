package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is more verbose than slog.LevelDebug. It is used for
// per-request HTTP details such as probe status codes.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps a -v count onto a log level: 0 warn, 1 info,
// 2 debug, 3 and above trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// VerbosityFromEnv converts a debug environment value into a -v count.
// "1" and "true" mean debug, "2" and "trace" mean trace.
func VerbosityFromEnv(val string) int {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "debug":
		return 2
	case "2", "trace":
		return 3
	default:
		return 0
	}
}

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level.
	Level slog.Level
	// Format selects the console output format.
	Format Format
	// Output receives console output. Defaults to os.Stderr.
	Output io.Writer
	// Mirrors receive a JSON copy of every record, e.g. a --log-file.
	Mirrors []io.Writer
}

// New creates a logger from cfg. Unknown formats fall back to text.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var console slog.Handler
	switch cfg.Format {
	case FormatJSON:
		console = slog.NewJSONHandler(output, opts)
	default:
		console = NewHandler(output, opts)
	}

	if len(cfg.Mirrors) == 0 {
		return slog.New(console)
	}

	handlers := []slog.Handler{console}
	for _, w := range cfg.Mirrors {
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
	}
	return slog.New(NewMultiHandler(handlers...))
}

// NewDiscard creates a logger that drops everything.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest creates a trace-level logger writing through t.Log, so output
// shows up only for failing tests or with -v.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
