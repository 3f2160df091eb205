package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Logger is a thin wrapper around zap, so the rest of the code does not
// depend on the logging backend directly.
type Logger struct {
	*zap.Logger
}

var defaultLogger *Logger

// Field helpers re-exported for call sites.
var (
	String     = zap.String
	Int        = zap.Int
	Int64      = zap.Int64
	Bool       = zap.Bool
	Time       = zap.Time
	Duration   = zap.Duration
	Any        = zap.Any
	ErrorField = zap.Error
)

func init() {
	defaultLogger = DevLogger()
}

// Default returns the process-wide logger.
func Default() *Logger { return defaultLogger }

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) { defaultLogger = l }

func (l *Logger) Named(name string) *Logger {
	return &Logger{l.Logger.Named(name)}
}

// Package-level helpers logging via the default logger.
func Debug(msg string, fields ...zap.Field) { defaultLogger.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { defaultLogger.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { defaultLogger.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { defaultLogger.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { defaultLogger.Fatal(msg, fields...) }

// DevLogger is the fallback used before configuration is parsed.
func DevLogger() *Logger {
	zl, _ := zap.NewDevelopment()
	return &Logger{zl}
}

// New creates the application logger at the given level. When filterRules is
// non-empty it is interpreted as zapfilter rules (for example
// "debug:scoring.* info:*") to scope verbose output to selected subsystems.
func New(level string, filterRules string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if filterRules != "" {
		filtered, err := zapfilter.ParseRules(filterRules)
		if err != nil {
			return nil, err
		}
		zl = zap.New(zapfilter.NewFilteringCore(zl.Core(), filtered))
	}
	return &Logger{zl}, nil
}
