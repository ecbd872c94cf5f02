// Package logging provides categorized file-based logging for gridNERD.
// Logs are written to one file per category under the configured directory.
// Logging is off unless debug mode is enabled, so production runs stay
// silent and allocation-free on the logging path.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category identifies a log stream.
type Category string

const (
	CategoryBoot   Category = "boot"   // startup, config resolution
	CategoryKernel Category = "kernel" // fact store, inference, Mangle kernel
	CategoryAgent  Category = "agent"  // decision policy, state transitions
	CategoryWorld  Category = "world"  // simulator events
	CategorySearch Category = "search" // path search invocations
	CategoryStore  Category = "store"  // episode persistence
	CategoryUI     Category = "ui"     // interactive viewer
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

var (
	mu        sync.RWMutex
	loggers   = make(map[Category]*Logger)
	logsDir   string
	debugMode bool
	logLevel  = LevelInfo
)

// Initialize configures the logging system. dir is where per-category files
// are created; debug false makes every logger a no-op.
func Initialize(dir string, debug bool, level string) error {
	mu.Lock()
	defer mu.Unlock()

	logsDir = dir
	debugMode = debug

	switch level {
	case "debug":
		logLevel = LevelDebug
	case "info", "":
		logLevel = LevelInfo
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	if !debugMode {
		return nil
	}
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// Logger writes timestamped lines for one category. A Logger with no file is
// a no-op.
type Logger struct {
	category Category
	file     *os.File
	mu       sync.Mutex
}

// Get returns (or creates) the logger for a category. Returns a no-op logger
// when debug mode is disabled or the file cannot be opened.
func Get(category Category) *Logger {
	mu.RLock()
	enabled := debugMode && logsDir != ""
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	if !enabled {
		return &Logger{category: category}
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", path, err)
		return &Logger{category: category}
	}

	l := &Logger{category: category, file: file}
	loggers[category] = l
	return l
}

func (l *Logger) write(level int, tag, format string, args ...interface{}) {
	if l.file == nil || level < logLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(l.file, "[%s] [%s] %s\n", ts, tag, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.write(LevelDebug, "DEBUG", format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, "INFO", format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(LevelWarn, "WARN", format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(LevelError, "ERROR", format, args...)
}

// CloseAll flushes and closes every open log file. Call on shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for cat, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
		delete(loggers, cat)
	}
}

// Convenience helpers, one pair per category, mirroring call sites' most
// common levels.

func Boot(format string, args ...interface{})        { Get(CategoryBoot).Info(format, args...) }
func BootDebug(format string, args ...interface{})   { Get(CategoryBoot).Debug(format, args...) }
func Kernel(format string, args ...interface{})      { Get(CategoryKernel).Info(format, args...) }
func KernelDebug(format string, args ...interface{}) { Get(CategoryKernel).Debug(format, args...) }
func KernelWarn(format string, args ...interface{})  { Get(CategoryKernel).Warn(format, args...) }
func Agent(format string, args ...interface{})       { Get(CategoryAgent).Info(format, args...) }
func AgentDebug(format string, args ...interface{})  { Get(CategoryAgent).Debug(format, args...) }
func World(format string, args ...interface{})       { Get(CategoryWorld).Info(format, args...) }
func WorldDebug(format string, args ...interface{})  { Get(CategoryWorld).Debug(format, args...) }
func Search(format string, args ...interface{})      { Get(CategorySearch).Info(format, args...) }
func SearchDebug(format string, args ...interface{}) { Get(CategorySearch).Debug(format, args...) }
func Store(format string, args ...interface{})       { Get(CategoryStore).Info(format, args...) }
func StoreDebug(format string, args ...interface{})  { Get(CategoryStore).Debug(format, args...) }
func StoreError(format string, args ...interface{})  { Get(CategoryStore).Error(format, args...) }
func UI(format string, args ...interface{})          { Get(CategoryUI).Info(format, args...) }
func UIDebug(format string, args ...interface{})     { Get(CategoryUI).Debug(format, args...) }
