package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger instance. It discards all output until Init is
// called.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Output  io.Writer  // Default: os.Stderr
	Format  string     // "text" (default), "json" or "none"
	Level   slog.Level // Minimum log level. Default: LevelWarn
	Verbose bool       // Shorthand for Level = LevelDebug
}

// ParseFormat validates a log format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case "", "text":
		return "text", nil
	case "json", "none":
		return f, nil
	default:
		return "", fmt.Errorf("logging: unknown format %q (want text, json or none)", s)
	}
}

// Init configures logging. Call from the command entry point before any log
// calls.
func Init(opts Options) error {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if format == "none" {
		Discard()
		return nil
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := opts.Level
	if level == 0 {
		level = slog.LevelWarn
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{Level: level}
	if format == "json" {
		L = slog.New(slog.NewJSONHandler(out, ho))
	} else {
		L = slog.New(slog.NewTextHandler(out, ho))
	}
	return nil
}

// Discard resets L to drop everything.
func Discard() { L = slog.New(slog.NewTextHandler(io.Discard, nil)) }

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
