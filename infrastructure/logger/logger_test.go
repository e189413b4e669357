package logger

import (
	"context"
	"testing"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"DEBUG", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"INFO", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestCtxError_StructuredFields(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))
	defer Use(nil)

	ctx := WithRequestID(context.Background(), "req-1")

	// Act
	CtxError(ctx, "boom", LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Error: &CustomError{
			Code:    constant.ErrCodeEncode,
			Message: "content too long to encode",
			Type:    constant.ErrTypeCapacity,
		},
		Data: map[string]interface{}{
			constant.DataModuleSize: 10,
		},
	})

	// Assert
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields[constant.LogRequestIDKey])
	assert.Equal(t, constant.CtxGenerate, fields[constant.LogFunctionKey])
	assert.Equal(t, constant.ErrCodeEncode, fields[constant.LogErrorCodeKey])
	assert.Equal(t, constant.ErrTypeCapacity, fields[constant.LogErrorTypeKey])
	assert.EqualValues(t, 10, fields[constant.DataModuleSize])
}

func TestLogging_NoLoggerIsNoop(t *testing.T) {
	Use(nil)

	assert.NotPanics(t, func() {
		Info("nothing", LoggerInfo{})
		CtxWarn(context.Background(), "nothing", LoggerInfo{})
	})
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}

func TestBuildConfig_ModeIndependentOfLevel(t *testing.T) {
	tests := []struct {
		name         string
		isProduction bool
		level        zapcore.Level
		wantEncoding string
		wantOutput   string
	}{
		{"development at info", false, zapcore.InfoLevel, constant.LogEncodingConsole, constant.LogOutputStderr},
		{"production at debug", true, zapcore.DebugLevel, constant.LogEncodingJSON, constant.LogOutputStdout},
		{"production at info", true, zapcore.InfoLevel, constant.LogEncodingJSON, constant.LogOutputStdout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := buildConfig(tt.isProduction, tt.level)

			assert.Equal(t, tt.wantEncoding, cfg.Encoding)
			assert.Equal(t, []string{tt.wantOutput}, cfg.OutputPaths)
			assert.Equal(t, tt.level, cfg.Level.Level())
			assert.Equal(t, tt.isProduction, cfg.Sampling != nil)
		})
	}
}
