package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prasetyowira/qrlogo/constant"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger_SetsRequestID(t *testing.T) {
	// Arrange
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = appLogger.RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	// Act
	RequestLogger()(next).ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(constant.HeaderRequestID))
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = appLogger.RequestID(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constant.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()

	RequestLogger()(next).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(constant.HeaderRequestID))
}

func TestRequestLogger_LogsStatusAndSize(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	appLogger.Use(zap.New(core))
	t.Cleanup(func() { appLogger.Use(nil) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	// Act
	RequestLogger()(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/generate", nil))

	// Assert
	completed := logs.FilterMessage(constant.MsgRequestCompleted).All()
	if assert.Len(t, completed, 1) {
		entry := completed[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		fields := entry.ContextMap()
		assert.EqualValues(t, http.StatusTeapot, fields[constant.DataStatus])
		assert.EqualValues(t, len("short and stout"), fields[constant.DataSize])
		assert.Equal(t, "/generate", fields[constant.DataPath])
	}
	assert.Len(t, logs.FilterMessage(constant.MsgRequestReceived).All(), 1)
}

func TestStatusResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newStatusResponseWriter(rec)

	_, _ = w.Write([]byte("ok"))
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 2, w.size)
}
