package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope mirrors the JSON body written by pkg/response.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// Do sends one request through h. body may be nil, a string of raw JSON or
// any value to be marshalled. token, when set, goes in a Bearer header.
func Do(t testing.TB, h http.Handler, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode parses the response envelope and, when dest is non-nil, its data.
func Decode(t testing.TB, rec *httptest.ResponseRecorder, dest interface{}) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	if dest != nil {
		require.NoError(t, json.Unmarshal(env.Data, dest), "data: %s", string(env.Data))
	}
	return env
}
