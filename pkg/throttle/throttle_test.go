package throttle

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemory_AllowsUpToMaxPerWindow(t *testing.T) {
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	m := NewMemory(3, time.Minute)
	m.now = c.now
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}
	ok, _ := m.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	// Other clients have their own bucket.
	ok, _ = m.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)

	c.advance(time.Minute)
	ok, _ = m.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
}

func TestMemory_Sweep(t *testing.T) {
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	m := NewMemory(1, time.Minute)
	m.now = c.now

	_, _ = m.Allow(context.Background(), "a")
	c.advance(30 * time.Second)
	_, _ = m.Allow(context.Background(), "b")

	c.advance(31 * time.Second)
	assert.Equal(t, 1, m.Sweep())
	assert.Len(t, m.buckets, 1)
	assert.Contains(t, m.buckets, "b")
}

type failing struct{}

func (failing) Allow(context.Context, string) (bool, error) { return false, fmt.Errorf("down") }
func (failing) Store() string                               { return "redis" }

func TestMiddleware(t *testing.T) {
	h := Middleware(NewMemory(1, time.Minute))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.RemoteAddr = "192.0.2.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too Many Requests")
}

func TestMiddleware_LimiterErrorFailsOpen(t *testing.T) {
	h := Middleware(failing{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRedis_KeyAlignsToWindow(t *testing.T) {
	r := NewRedis(nil, 1, time.Minute)
	r.now = func() time.Time { return time.Unix(120, 0) }
	assert.Equal(t, "orders:throttle:1.2.3.4:2", r.key("1.2.3.4"))

	r.now = func() time.Time { return time.Unix(179, 0) }
	assert.Equal(t, "orders:throttle:1.2.3.4:2", r.key("1.2.3.4"))

	r.now = func() time.Time { return time.Unix(180, 0) }
	assert.Equal(t, "orders:throttle:1.2.3.4:3", r.key("1.2.3.4"))
}

func TestRedis_Allow(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)
	defer rdb.Close()

	r := NewRedis(rdb, 2, time.Minute)
	client := fmt.Sprintf("test-%d", time.Now().UnixNano())
	t.Cleanup(func() { rdb.Del(ctx, r.key(client)) })

	for _, want := range []bool{true, true, false} {
		ok, err := r.Allow(ctx, client)
		require.NoError(t, err)
		assert.Equal(t, want, ok)
	}
}
