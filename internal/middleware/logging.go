package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type logCtxKey struct{}

// responseRecorder wraps http.ResponseWriter to capture the status code
// and response size for the completion log line.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	bytesOut   int
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	n, err := rr.ResponseWriter.Write(b)
	rr.bytesOut += n
	return n, err
}

// LoggingMiddleware attaches a request-scoped logger (with the chi request
// id) to the context and emits start/completion log lines.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			ctx := context.WithValue(r.Context(), logCtxKey{}, requestLogger)
			r = r.WithContext(ctx)

			requestLogger.Debug("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			rr := newResponseRecorder(w)
			next.ServeHTTP(rr, r)

			latency := time.Since(startTime)
			logLevel := slog.LevelInfo
			if rr.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if rr.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.Log(r.Context(), logLevel, "Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rr.statusCode,
				"latency_ms", float64(latency.Nanoseconds())/1e6,
				"bytes_out", rr.bytesOut,
			)
		})
	}
}

// GetLogger returns the request-scoped logger, or the default logger when
// called outside a request.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
