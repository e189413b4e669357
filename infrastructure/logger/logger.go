// Package logger wraps a process-wide zap logger. Every entry carries the calling
// operation, an optional coded error and free-form data fields.
package logger

import (
	"context"
	"os"
	"strings"

	"github.com/prasetyowira/qrlogo/constant"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LoggerInfo describes one log entry
type LoggerInfo struct {
	ContextFunction string
	Error           *CustomError
	Data            map[string]interface{}
}

// CustomError is the coded form of an error as it appears in the log
type CustomError struct {
	Code    string
	Message string
	Type    string
}

type ctxKey string

const requestIDKey ctxKey = constant.RequestIDKey

// ParseLevel maps DEBUG/INFO/WARN/ERROR (any case) to a zap level, defaulting to info
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Initialize builds the package logger. Production mode writes sampled JSON to
// stdout; otherwise coloured console lines go to stderr so command output stays clean.
func Initialize(isProduction bool, level zapcore.Level) {
	l, err := buildConfig(isProduction, level).Build()
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger = l
}

func buildConfig(isProduction bool, level zapcore.Level) zap.Config {
	enc := zapcore.EncoderConfig{
		TimeKey:        constant.LogTimeKey,
		LevelKey:       constant.LogLevelKey,
		NameKey:        constant.LogNameKey,
		CallerKey:      constant.LogCallerKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     constant.LogMessageKey,
		StacktraceKey:  constant.LogStacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		EncoderConfig:    enc,
		ErrorOutputPaths: []string{constant.LogOutputStderr},
	}

	if isProduction {
		cfg.Encoding = constant.LogEncodingJSON
		cfg.OutputPaths = []string{constant.LogOutputStdout}
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
		return cfg
	}

	cfg.Development = true
	cfg.Encoding = constant.LogEncodingConsole
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{constant.LogOutputStderr}
	return cfg
}

// Use replaces the package logger, mainly for tests
func Use(l *zap.Logger) {
	logger = l
}

// Close flushes buffered entries
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func fieldsFor(ctx context.Context, info LoggerInfo) []zap.Field {
	fields := make([]zap.Field, 0, len(info.Data)+5)

	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String(constant.LogRequestIDKey, id))
	}
	if info.ContextFunction != "" {
		fields = append(fields, zap.String(constant.LogFunctionKey, info.ContextFunction))
	}
	if e := info.Error; e != nil {
		fields = append(fields,
			zap.String(constant.LogErrorCodeKey, e.Code),
			zap.String(constant.LogErrorTypeKey, e.Type),
			zap.String(constant.LogErrorMessageKey, e.Message),
		)
	}
	for k, v := range info.Data {
		fields = append(fields, zap.Any(k, v))
	}

	return fields
}

// write skips field construction entirely when the level is disabled
func write(ctx context.Context, level zapcore.Level, msg string, info LoggerInfo) {
	if logger == nil {
		if level == zapcore.FatalLevel {
			os.Exit(1)
		}
		return
	}
	if ce := logger.WithOptions(zap.AddCallerSkip(2)).Check(level, msg); ce != nil {
		ce.Write(fieldsFor(ctx, info)...)
	}
}

func Debug(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.DebugLevel, msg, info)
}

func Info(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.InfoLevel, msg, info)
}

func Warn(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.WarnLevel, msg, info)
}

func Error(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.ErrorLevel, msg, info)
}

// Fatal logs and exits the process
func Fatal(msg string, info LoggerInfo) {
	write(context.Background(), zapcore.FatalLevel, msg, info)
}

// CtxDebug and the other Ctx variants add the request ID carried by ctx
func CtxDebug(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.DebugLevel, msg, info)
}

func CtxInfo(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.InfoLevel, msg, info)
}

func CtxWarn(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.WarnLevel, msg, info)
}

func CtxError(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.ErrorLevel, msg, info)
}

func CtxFatal(ctx context.Context, msg string, info LoggerInfo) {
	write(ctx, zapcore.FatalLevel, msg, info)
}

// WithRequestID returns a copy of ctx carrying requestID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID stored in ctx, or ""
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
