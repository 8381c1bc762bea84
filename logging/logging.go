// Package logging configures the process-wide slog logger. Settings come
// from Options, usually built by FromEnv and then overridden by flags.
//
//   - WINDOWSTACK_LOG_LEVEL=debug|info|warn|error
//   - WINDOWSTACK_LOG_FORMAT=text|json
//   - WINDOWSTACK_LOG_FILE=<path> (adds a rotated JSON file sink)
//   - WINDOWSTACK_LOG_SOURCE=true|false
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level     string
	Format    string // "text" or "json"
	AddSource bool
	File      string
	// Output overrides the console writer. Defaults to os.Stderr.
	Output io.Writer
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *slog.Logger
	fileSink      *lj.Logger
)

// L returns the process logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Init replaces the process logger and slog's default.
func Init(opts Options) {
	lvl := ParseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}
	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(out, handlerOpts)
	} else {
		console = slog.NewTextHandler(out, handlerOpts)
	}

	handlers := []slog.Handler{console}
	var sink *lj.Logger
	if path := strings.TrimSpace(opts.File); path != "" {
		sink = &lj.Logger{Filename: path, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		handlers = append(handlers, slog.NewJSONHandler(sink, handlerOpts))
	}

	var h slog.Handler = console
	if len(handlers) > 1 {
		h = &fanout{hs: handlers}
	}
	logger := slog.New(h).With(slog.String("app", "windowstack"))

	defaultMu.Lock()
	if fileSink != nil {
		_ = fileSink.Close()
	}
	fileSink = sink
	defaultLogger = logger
	defaultMu.Unlock()
	slog.SetDefault(logger)
}

// Close flushes and releases the rotating file sink, if any.
func Close() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if fileSink == nil {
		return nil
	}
	err := fileSink.Close()
	fileSink = nil
	return err
}

func FromEnv() Options {
	return Options{
		Level:     getenv("WINDOWSTACK_LOG_LEVEL", "info"),
		Format:    getenv("WINDOWSTACK_LOG_FORMAT", "text"),
		AddSource: strings.EqualFold(getenv("WINDOWSTACK_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("WINDOWSTACK_LOG_FILE"),
	}
}

// WithComponent returns the process logger tagged with a component name.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

func ParseLevel(s string) slog.Level {
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

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// fanout sends every record to each handler.
type fanout struct{ hs []slog.Handler }

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return &fanout{hs: out}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		out[i] = h.WithGroup(name)
	}
	return &fanout{hs: out}
}
