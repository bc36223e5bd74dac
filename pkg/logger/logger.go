package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used across the service.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is a structured log field.
type Field struct {
	zap.Field
}

func String(key, value string) Field  { return Field{zap.String(key, value)} }
func Int(key string, value int) Field { return Field{zap.Int(key, value)} }
func Err(err error) Field             { return Field{zap.Error(err)} }

func Duration(key string, d time.Duration) Field {
	return Field{zap.Duration(key, d)}
}

type zapLogger struct {
	l *zap.Logger
}

// New builds a zap-backed logger. In the "dev" environment it writes
// human-readable console output; otherwise JSON.
func New(environment, level, serviceName string) Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug", "DEBUG":
		zapLevel = zap.DebugLevel
	case "warn", "WARNING":
		zapLevel = zap.WarnLevel
	case "error", "ERROR":
		zapLevel = zap.ErrorLevel
	default:
		zapLevel = zap.InfoLevel
	}

	var encoder zapcore.Encoder
	if environment == "dev" {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "time"
		cfg.MessageKey = "msg"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(zapLevel))
	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		With(zap.String("service", serviceName))

	return &zapLogger{l: l}
}

// Nop returns a logger that discards everything. Used as the default in
// tests and before SetLogger wiring happens.
func Nop() Logger {
	return &zapLogger{l: zap.NewNop()}
}

func unwrap(fields []Field) []zap.Field {
	zf := make([]zap.Field, len(fields))
	for i, f := range fields {
		zf[i] = f.Field
	}
	return zf
}

func (z *zapLogger) Debug(msg string, fields ...Field) { z.l.Debug(msg, unwrap(fields)...) }
func (z *zapLogger) Info(msg string, fields ...Field)  { z.l.Info(msg, unwrap(fields)...) }
func (z *zapLogger) Warn(msg string, fields ...Field)  { z.l.Warn(msg, unwrap(fields)...) }
func (z *zapLogger) Error(msg string, fields ...Field) { z.l.Error(msg, unwrap(fields)...) }

func (z *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{l: z.l.With(unwrap(fields)...)}
}

func (z *zapLogger) Sync() error { return z.l.Sync() }
