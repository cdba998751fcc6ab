package logger

import (
	"sync"

	"go.uber.org/zap/zapcore"
)

// Log levels accepted by Get and config.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. Only the first call's level is used.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level)
	})
	return globalLogger
}

// New wraps an arbitrary core, e.g. an observer in tests.
func New(core zapcore.Core) *Logger {
	return fromCore(core)
}
