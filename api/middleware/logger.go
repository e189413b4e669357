package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrlogo/constant"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// RequestLogger tags each request with an ID, carried in the context and echoed
// in the X-Request-ID header, and writes one access entry when it completes.
// An ID already set by the client or a proxy is kept.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constant.HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			ctx := appLogger.WithRequestID(r.Context(), requestID)
			w.Header().Set(constant.HeaderRequestID, requestID)

			appLogger.CtxDebug(ctx, constant.MsgRequestReceived, appLogger.LoggerInfo{
				ContextFunction: constant.CtxAPI,
				Data: map[string]interface{}{
					constant.DataMethod: r.Method,
					constant.DataPath:   r.URL.Path,
				},
			})

			rec := newStatusResponseWriter(w)
			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))

			logAt(rec.status)(ctx, constant.MsgRequestCompleted, appLogger.LoggerInfo{
				ContextFunction: constant.CtxAPI,
				Data: map[string]interface{}{
					constant.DataMethod:     r.Method,
					constant.DataPath:       r.URL.Path,
					constant.DataStatus:     rec.status,
					constant.DataSize:       rec.size,
					constant.DataLatency:    time.Since(start).String(),
					constant.DataRemoteAddr: r.RemoteAddr,
					constant.DataUserAgent:  r.UserAgent(),
				},
			})
		})
	}
}

func logAt(status int) func(ctx context.Context, msg string, info appLogger.LoggerInfo) {
	switch {
	case status >= http.StatusInternalServerError:
		return appLogger.CtxError
	case status >= http.StatusBadRequest:
		return appLogger.CtxWarn
	default:
		return appLogger.CtxInfo
	}
}

// statusResponseWriter records the first status written and the body size
type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

func (w *statusResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
