package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a *zap.Logger to the Logger interface.
type ZapLogger struct {
	z *zap.Logger
}

// NewZapLogger builds a zap logger. A format of "console" uses
// zap's development encoder; anything else uses the production
// JSON encoder.
func NewZapLogger(format string, level LogLevel) (*ZapLogger, error) {
	var zapCfg zap.Config
	if strings.EqualFold(format, "console") {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel(level))

	z, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{z: z}, nil
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

// Info logs an informational message.
func (l *ZapLogger) Info(msg string, fields ...Field) {
	l.z.Info(msg, zapFields(fields)...)
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(msg string, fields ...Field) {
	l.z.Warn(msg, zapFields(fields)...)
}

// Error logs an error message.
func (l *ZapLogger) Error(msg string, fields ...Field) {
	l.z.Error(msg, zapFields(fields)...)
}

// Debug logs a debug message.
func (l *ZapLogger) Debug(msg string, fields ...Field) {
	l.z.Debug(msg, zapFields(fields)...)
}

// WithFields returns a child logger carrying fields.
func (l *ZapLogger) WithFields(fields ...Field) Logger {
	return &ZapLogger{z: l.z.With(zapFields(fields)...)}
}

// Close flushes buffered entries. Sync errors on terminals are
// ignored.
func (l *ZapLogger) Close() error {
	_ = l.z.Sync()
	return nil
}
