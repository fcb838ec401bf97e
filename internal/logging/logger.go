// Package logging provides structured logging for dailylink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a new logger with additional key-value pairs.
	With(args ...any) Logger
}

// Config controls where and how much is logged.
type Config struct {
	Level  string    // debug, info, warn, error
	File   string    // JSON log file; empty logs text to Output
	Output io.Writer // defaults to os.Stderr
}

type logger struct {
	clogger *clog.Logger
}

// New builds a Logger from cfg. The returned close func releases the log
// file, if one was opened.
func New(cfg Config) (Logger, func() error, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	closer := func() error { return nil }
	formatter := clog.TextFormatter

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = f.Close
		formatter = clog.JSONFormatter
	}

	c := clog.NewWithOptions(out, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           parseLevel(cfg.Level),
		Prefix:          "dailylink",
	})
	c.SetFormatter(formatter)
	return &logger{clogger: c}, closer, nil
}

// parseLevel converts a string level to clog.Level.
func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "info":
		return clog.InfoLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.WarnLevel
	}
}

func (l *logger) Debug(msg string, args ...any) { l.clogger.Debug(msg, args...) }
func (l *logger) Info(msg string, args ...any)  { l.clogger.Info(msg, args...) }
func (l *logger) Warn(msg string, args ...any)  { l.clogger.Warn(msg, args...) }
func (l *logger) Error(msg string, args ...any) { l.clogger.Error(msg, args...) }

func (l *logger) With(args ...any) Logger {
	return &logger{clogger: l.clogger.With(args...)}
}

// nopLogger is a logger that discards all output.
type nopLogger struct{}

func (n nopLogger) Debug(msg string, args ...any) {}
func (n nopLogger) Info(msg string, args ...any)  {}
func (n nopLogger) Warn(msg string, args ...any)  {}
func (n nopLogger) Error(msg string, args ...any) {}
func (n nopLogger) With(args ...any) Logger       { return n }

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}
