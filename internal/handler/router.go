package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

// HTTPObserver records finished requests; internal/metrics implements it.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

type ctxKey int

const loggerKey ctxKey = iota

// NewRouter registers the chatbot routes. metrics may be nil.
func NewRouter(h *Handler, metrics http.Handler, observer HTTPObserver) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /chat", h.Chat)
	mux.HandleFunc("GET /healthz", h.Health)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	return withRequestContext(mux, h.logger, observer)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withRequestContext tags each request with an id, a scoped logger and,
// when observer is set, latency metrics.
func withRequestContext(next http.Handler, logger *zap.Logger, observer HTTPObserver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		reqLogger := logger.With(zap.String("request_id", id))
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, reqLogger))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		if observer != nil {
			observer.ObserveHTTP(r.Method, route, rec.status, elapsed)
		}
		reqLogger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed))
	})
}

func requestLogger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return fallback
}
