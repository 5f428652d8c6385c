package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/orderservice/pkg/logger"
	"github.com/shashiranjanraj/orderservice/pkg/reqid"
)

// responseWriter captures the status code and whether headers went out.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

// Logger logs one line per request and stores a request_id-tagged logger on
// the context for logger.WithCtx. Wire reqid.Middleware before it.
// The caller's email is included once Authenticate has resolved it.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := reqid.FromCtx(r.Context())

		reqLog := logger.L.With("request_id", rid)
		ctx := logger.InjectLogger(r.Context(), reqLog)
		who := &caller{}
		ctx = context.WithValue(ctx, callerKey{}, who)
		r = r.WithContext(ctx)

		rw := wrap(w)
		next.ServeHTTP(rw, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start).String(),
			"ip", ClientIP(r),
		}
		if who.email != "" {
			attrs = append(attrs, "user", who.email)
		}

		switch {
		case rw.statusCode >= 500:
			reqLog.Error("request", attrs...)
		case rw.statusCode >= 400:
			reqLog.Warn("request", attrs...)
		default:
			reqLog.Info("request", attrs...)
		}
	})
}

// caller is filled in by Authenticate so the access log can name the user
// even though the identity lives on a child context.
type caller struct{ email string }

type callerKey struct{}

func noteCaller(r *http.Request, email string) {
	if c, ok := r.Context().Value(callerKey{}).(*caller); ok {
		c.email = email
	}
}
