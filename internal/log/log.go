// Package log wraps go.uber.org/zap behind package-level helpers so the rest
// of the service logs through one consistently configured logger.
package log

import (
    "fmt"
    "os"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. JSON output, info level unless
// LOG_LEVEL=debug is set.
var Logger = newLogger()

func newLogger() *zap.SugaredLogger {
    cfg := zap.NewProductionConfig()
    cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
    if os.Getenv("LOG_LEVEL") == "debug" {
        cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
    }
    cfg.EncoderConfig.TimeKey = "ts"
    cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
    cfg.DisableCaller = true

    l, err := cfg.Build()
    if err != nil {
        fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
        return zap.NewNop().Sugar()
    }
    return l.Sugar()
}

// Debug logs at debug level with optional key-value pairs.
func Debug(msg string, kv ...any) { Logger.Debugw(msg, kv...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, a ...any) { Logger.Debugf(format, a...) }

// Info logs at info level with optional key-value pairs.
func Info(msg string, kv ...any) { Logger.Infow(msg, kv...) }

// Infof logs a formatted message at info level.
func Infof(format string, a ...any) { Logger.Infof(format, a...) }

// Warn logs at warn level with optional key-value pairs.
func Warn(msg string, kv ...any) { Logger.Warnw(msg, kv...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, a ...any) { Logger.Warnf(format, a...) }

// Error logs at error level with optional key-value pairs.
func Error(msg string, kv ...any) { Logger.Errorw(msg, kv...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, a ...any) { Logger.Errorf(format, a...) }

// Fatal logs at fatal level and exits the process.
func Fatal(msg string, kv ...any) { Logger.Fatalw(msg, kv...) }

// Fatalf logs a formatted message at fatal level and exits the process.
func Fatalf(format string, a ...any) { Logger.Fatalf(format, a...) }
