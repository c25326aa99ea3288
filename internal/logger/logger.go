// internal/logger/logger.go
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
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	logLevel      = new(slog.LevelVar)
	initOnce      sync.Once
)

// Init initializes the logger package with a level and an output writer.
// The filtering configuration is optional; pass nil to log everything at or above level.
func Init(level slog.Level, output io.Writer, cfg *Config) {
	if output == nil {
		output = io.Discard
	}
	logLevel.Set(level)

	opts := slog.HandlerOptions{
		Level:     logLevel,
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
	var handler slog.Handler = slog.NewTextHandler(output, &opts)
	if cfg != nil {
		cfg.process()
		handler = newFilteringHandler(handler, cfg)
	}

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()
	initOnce.Do(func() {}) // explicit Init wins over the implicit default

	// PC=0: no caller for the init record itself
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "Logger initialized", 0)
	r.AddAttrs(slog.String("level", level.String()))
	_ = handler.Handle(context.Background(), r)
}

// ensureInitialized installs a discarding logger if Init was never called.
func ensureInitialized() *slog.Logger {
	initOnce.Do(func() {
		mu.Lock()
		if defaultLogger == nil {
			logLevel.Set(slog.LevelInfo)
			defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel}))
		}
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

// logAtLevel builds a record carrying the caller of the exported wrapper.
func logAtLevel(level slog.Level, tag string, format string, args ...interface{}) {
	l := ensureInitialized()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// skip runtime.Callers, logAtLevel and the wrapper
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, "", format, args...)
}

// DebugTagf logs a debug message carrying a tag that the filter can match on.
func DebugTagf(tag string, format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, tag, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, "", format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, "", format, args...)
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	return ensureInitialized()
}
