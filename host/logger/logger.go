// Package logger provides the process-wide zap logger for the host tools.
package logger

import "sync"

// Log levels accepted by Get and New
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

// Get returns the singleton logger. The level of the first call wins.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level)
	})
	return globalLogger
}
