package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelByEnv(t *testing.T) {
	var buf bytes.Buffer

	New("production", &buf).Debug("hidden")
	assert.Empty(t, buf.String())

	New("production", &buf).Info("shown", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	New("local", &buf).Debug("dev")
	assert.Contains(t, buf.String(), "msg=dev")
}

func TestWithCtx(t *testing.T) {
	var buf bytes.Buffer
	reqLog := New("local", &buf).With("request_id", "abc")

	ctx := InjectLogger(context.Background(), reqLog)
	WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")

	assert.Same(t, L, WithCtx(context.Background()))
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("svc", "orders")

	log.Info("info line")
	log.Warn("warn line")

	assert.Contains(t, a.String(), "info line")
	assert.Contains(t, a.String(), "warn line")
	assert.NotContains(t, b.String(), "info line")
	assert.Contains(t, b.String(), "svc=orders")
}

func TestMongoHandler_Document(t *testing.T) {
	h := &MongoHandler{level: slog.LevelInfo}

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))

	withAttrs := h.WithAttrs([]slog.Attr{slog.String("request_id", "rid-1")}).(*MongoHandler)
	grouped := withAttrs.WithGroup("order").(*MongoHandler)

	r := slog.NewRecord(time.Unix(100, 0), slog.LevelWarn, "deleted", 0)
	r.AddAttrs(
		slog.Int("id", 5),
		slog.Any("error", errors.New("boom")),
		slog.Group("owner", slog.String("email", "a@x.com")),
	)

	doc := grouped.document(r)
	assert.Equal(t, "WARN", doc.Level)
	assert.Equal(t, "deleted", doc.Msg)
	assert.Equal(t, "rid-1", doc.RequestID)
	require.NotNil(t, doc.Attrs)
	assert.Equal(t, int64(5), doc.Attrs["order.id"])
	assert.Equal(t, "boom", doc.Attrs["order.error"])
	assert.Equal(t, "a@x.com", doc.Attrs["order.owner.email"])
	_, hasRID := doc.Attrs["request_id"]
	assert.False(t, hasRID)
}
