// Package logger wraps log/slog with printf-style helpers and source/tag filtering.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	defaultLogger *slog.Logger
	logLevel      *slog.LevelVar
	initOnce      sync.Once
	mu            sync.RWMutex
)

// debugFilter traces filter decisions to stderr. Set DREAM_LOG_FILTER_DEBUG=1 to enable.
var debugFilter = os.Getenv("DREAM_LOG_FILTER_DEBUG") == "1"

// Init configures the package logger. Calls after the first are ignored.
func Init(cfg Config, output io.Writer) {
	initOnce.Do(func() {
		install(cfg, output)
	})
}

// install builds the handler chain and swaps it in.
func install(cfg Config, output io.Writer) {
	if output == nil {
		output = io.Discard
	}
	cfg.process()

	lv := new(slog.LevelVar)
	lv.Set(cfg.level.Level())

	opts := slog.HandlerOptions{
		Level:     lv,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	base := slog.NewTextHandler(output, &opts)

	mu.Lock()
	logLevel = lv
	defaultLogger = slog.New(newFilteringHandler(base, &cfg))
	mu.Unlock()

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "Logger initialized", 0)
	r.AddAttrs(slog.String("level", lv.Level().String()))
	_ = base.Handle(context.Background(), r)
}

// ensureInitialized installs a discarding logger if Init was never called.
func ensureInitialized() {
	initOnce.Do(func() {
		install(NewConfig(), io.Discard)
	})
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level slog.Level) {
	ensureInitialized()
	mu.RLock()
	defer mu.RUnlock()
	logLevel.Set(level)
}

// logAtLevel creates and logs a record at the given level with the caller's source.
func logAtLevel(level slog.Level, tag string, format string, args ...any) {
	ensureInitialized()
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...any) {
	logAtLevel(slog.LevelDebug, "", format, args...)
}

// DebugTagf logs a debug message carrying a filter tag.
func DebugTagf(tag string, format string, args ...any) {
	logAtLevel(slog.LevelDebug, tag, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...any) {
	logAtLevel(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...any) {
	logAtLevel(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...any) {
	logAtLevel(slog.LevelError, "", format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...any) {
	logAtLevel(slog.LevelError, "", format, args...)
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	ensureInitialized()
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}
