// Package logger is the CLI's file logger. The terminal belongs to the TUI,
// so everything goes to tmp/cli-<timestamp>.log instead of stderr.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	logger  = zap.NewNop()
	logFile *os.File
)

// Init opens a timestamped log file under dir. When the directory or file
// cannot be created, logs go to stderr.
func Init(dir string) {
	mu.Lock()
	defer mu.Unlock()

	if dir == "" {
		dir = "tmp"
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if err := os.MkdirAll(dir, 0755); err == nil {
		name := filepath.Join(dir, fmt.Sprintf("cli-%s.log", time.Now().Format("20060102-150405")))
		if f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			logFile = f
			sink = zapcore.AddSync(f)
		}
	}

	level := zapcore.InfoLevel
	if os.Getenv("DEBUG") != "" {
		level = zapcore.DebugLevel
	}

	logger = zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller(), zap.AddCallerSkip(1)).Named("cli")
}

// L returns the underlying logger for structured fields.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a log message
func Log(format string, v ...any) {
	L().Sugar().Infof(format, v...)
}

// LogError writes an error log message
func LogError(err error, format string, v ...any) {
	L().Error(fmt.Sprintf(format, v...), zap.Error(err))
}

// CloseLog flushes and closes the log file
func CloseLog() {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = zap.NewNop()
}
