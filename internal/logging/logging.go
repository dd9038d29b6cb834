package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"

	"github.com/inkframe/inkframe/internal/config"
)

var (
	logger   *slog.Logger
	initOnce sync.Once
)

// Init configures the process-wide structured logger. The level comes from
// the LOG_LEVEL environment variable (debug, info, warn, error).
func Init() {
	initOnce.Do(func() {
		logger = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      parseLevel(config.Get("LOG_LEVEL", "info")),
			TimeFormat: time.RFC3339,
		}))
		slog.SetDefault(logger)
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func get() *slog.Logger {
	Init()
	return logger
}

// Debug logs at debug level with key-value attributes.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs at info level with key-value attributes.
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs at warn level with key-value attributes.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs at error level with key-value attributes.
func Error(msg string, args ...any) { get().Error(msg, args...) }

// DebugWithComponent logs at debug level tagged with a component name.
func DebugWithComponent(component, msg string, args ...any) {
	get().With("component", component).Debug(msg, args...)
}

// InfoWithComponent logs at info level tagged with a component name.
func InfoWithComponent(component, msg string, args ...any) {
	get().With("component", component).Info(msg, args...)
}

// WarnWithComponent logs at warn level tagged with a component name.
func WarnWithComponent(component, msg string, args ...any) {
	get().With("component", component).Warn(msg, args...)
}

// ErrorWithComponent logs at error level tagged with a component name.
func ErrorWithComponent(component, msg string, args ...any) {
	get().With("component", component).Error(msg, args...)
}
