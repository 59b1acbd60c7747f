// Package logger provides the leveled console logger used for scan
// diagnostics. Implementations are thread-safe.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/rkern/grin/internal/models"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Logger is the sink for scan diagnostics and progress chatter.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogDiagnostic(d models.Diagnostic)
}

// ConsoleLogger logs to a writer with level filtering and thread
// safety. If writer is nil, messages are silently discarded.
// Valid levels: debug, info, warn, error (case-insensitive); empty or
// invalid levels default to "warn" so per-file scan problems stay
// visible without flooding normal runs.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer at the given minimum level. colorOutput enables colored
// level tags; the caller resolves terminal detection.
func NewConsoleLogger(writer io.Writer, logLevel string, colorOutput bool) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: colorOutput,
	}
}

// normalizeLogLevel converts a log level string to lowercase and
// validates it, defaulting to "warn".
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "warn"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelWarn
	}
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// LogDiagnostic logs a per-path scan diagnostic. Diagnostics are
// warnings: the scan continued without the affected path.
func (cl *ConsoleLogger) LogDiagnostic(d models.Diagnostic) {
	cl.LogWarn(d.String())
}

// logWithLevel logs a message at the specified level if filtering
// allows it. Format: "grin: [LEVEL] <message>".
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	tag := level
	if cl.colorOutput {
		switch level {
		case "DEBUG":
			tag = color.New(color.FgCyan).Sprint(level)
		case "INFO":
			tag = color.New(color.FgBlue).Sprint(level)
		case "WARN":
			tag = color.New(color.FgYellow).Sprint(level)
		case "ERROR":
			tag = color.New(color.FgRed).Sprint(level)
		}
	}

	fmt.Fprintf(cl.writer, "grin: [%s] %s\n", tag, message)
}

// NoOpLogger is a Logger implementation that discards all messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(message string) {}

// LogInfo is a no-op implementation.
func (n *NoOpLogger) LogInfo(message string) {}

// LogWarn is a no-op implementation.
func (n *NoOpLogger) LogWarn(message string) {}

// LogError is a no-op implementation.
func (n *NoOpLogger) LogError(message string) {}

// LogDiagnostic is a no-op implementation.
func (n *NoOpLogger) LogDiagnostic(d models.Diagnostic) {}
