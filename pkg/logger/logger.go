// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the per-request logger that middleware.Logger stored on the
// context, already tagged with request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", o.ID)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/orderservice/config"
)

var L = New(config.AppEnv(), os.Stdout)

// New builds the base logger: JSON at info in production, text at debug
// everywhere else.
func New(env string, w io.Writer) *slog.Logger {
	return slog.New(newHandler(env, w))
}

func newHandler(env string, w io.Writer) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Setup installs the process logger. When LOG_MONGO_URI is set, records are
// also shipped to MongoDB and the returned func flushes and disconnects.
func Setup() (func(), error) {
	handler := newHandler(config.AppEnv(), os.Stdout)
	closer := func() {}

	if uri := config.LogMongoURI(); uri != "" {
		sink, err := NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection(), slog.LevelInfo)
		if err != nil {
			return closer, err
		}
		handler = NewMultiHandler(handler, sink)
		closer = sink.Close
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return closer, nil
}

type ctxKey struct{}

// WithCtx returns the logger injected into ctx by the request middleware, or
// the base logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
