// Package logger builds the process-wide slog logger.
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Env is the deployment environment.
type Env string

const (
	Development Env = "development"
	Production  Env = "production"
)

// ParseEnv maps a raw environment value, defaulting to development.
func ParseEnv(s string) Env {
	if Env(s) == Production {
		return Production
	}
	return Development
}

type options struct {
	logToFile  bool
	logFile    string
	maxSizeMB  int
	maxBackups int
	console    io.Writer
}

// Option configures New.
type Option func(*options)

// WithLogToFile enables the rotating JSON file handler.
func WithLogToFile(enabled bool) Option {
	return func(o *options) { o.logToFile = enabled }
}

// WithLogFile sets the rotating log file path.
func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

// WithConsole redirects console output, mostly for tests.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// New returns a logger writing colored output to the console and, when
// enabled, JSON lines to a size-rotated file.
func New(env Env, opts ...Option) *slog.Logger {
	o := &options{
		logFile:    "logs/sahachari.log",
		maxSizeMB:  20,
		maxBackups: 5,
		console:    os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	level := slog.LevelInfo
	if env == Development {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		tint.NewHandler(o.console, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    env == Production,
		}),
	}

	if o.logToFile {
		handlers = append(handlers, slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    o.maxSizeMB,
			MaxBackups: o.maxBackups,
			Compress:   true,
		}, &slog.HandlerOptions{Level: level}))
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(fanout(handlers))
}

// fanout sends every record to all handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
