package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/adapter-bridge/internal/core"
)

type fakeSync struct {
	got    *core.JobRequest
	result *core.AdapterResult
}

func (f *fakeSync) Handle(_ context.Context, req *core.JobRequest) *core.AdapterResult {
	f.got = req
	return f.result
}

type fakeAsync struct {
	got      *core.JobRequest
	err      error
	afterAck func()
}

func (f *fakeAsync) HandleAsync(_ context.Context, req *core.JobRequest, acknowledge func(core.PendingAck)) error {
	f.got = req
	acknowledge(core.PendingAck{Pending: true})
	if f.afterAck != nil {
		f.afterAck()
	}
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(sync *fakeSync, async *fakeAsync, mock bool) http.Handler {
	return NewRouter(RouterConfig{IncomingTokens: []string{"secret"}, NodeMockEnabled: mock}, sync, async, testLogger())
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := do(t, newTestRouter(&fakeSync{}, &fakeAsync{}, false), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_Forbidden(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		token string
	}{
		{name: "sync without header", path: "/"},
		{name: "sync with wrong token", path: "/", token: "nope"},
		{name: "async with wrong token", path: "/async", token: "secrets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sync := &fakeSync{}
			async := &fakeAsync{}
			rec := do(t, newTestRouter(sync, async, false), http.MethodPost, tt.path, tt.token, `{"id":"1","data":{}}`)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.JSONEq(t, `{"jobRunID":"0","status":403,"message":"Forbidden","data":{},"error":true}`, rec.Body.String())
			assert.Nil(t, sync.got)
			assert.Nil(t, async.got)
		})
	}
}

func TestRouter_Sync(t *testing.T) {
	sync := &fakeSync{result: &core.AdapterResult{
		JobRunID: "42",
		Status:   http.StatusBadRequest,
		Message:  "Input parameter(s) not found: fsym(base,from)",
		Error:    true,
	}}
	rec := do(t, newTestRouter(sync, &fakeAsync{}, false), http.MethodPost, "/", "secret", `{"id":42,"data":{"to":"USD"}}`)

	require.NotNil(t, sync.got)
	assert.Equal(t, "42", sync.got.JobRunID)
	assert.Equal(t, map[string]any{"to": "USD"}, sync.got.Data)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"jobRunID":"42","status":400,"message":"Input parameter(s) not found: fsym(base,from)","error":true}`, rec.Body.String())
}

func TestRouter_SyncMalformedBody(t *testing.T) {
	sync := &fakeSync{}
	rec := do(t, newTestRouter(sync, &fakeAsync{}, false), http.MethodPost, "/", "secret", `{"id":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, sync.got)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
}

func TestRouter_Async(t *testing.T) {
	var bodyAtSchedule string
	rec := httptest.NewRecorder()
	async := &fakeAsync{afterAck: func() { bodyAtSchedule = rec.Body.String() }}
	h := newTestRouter(&fakeSync{}, async, false)

	req := httptest.NewRequest(http.MethodPost, "/async", strings.NewReader(`{"id":"9","data":{"from":"ETH"},"responseURL":"http://node/cb"}`))
	req.Header.Set("Authorization", "Bearer secret")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending":true}`, rec.Body.String())
	assert.JSONEq(t, `{"pending":true}`, bodyAtSchedule)
	require.NotNil(t, async.got)
	assert.Equal(t, "9", async.got.JobRunID)
	assert.Equal(t, "http://node/cb", async.got.ResponseURL)
}

func TestRouter_AsyncSchedulingErrorKeepsAck(t *testing.T) {
	async := &fakeAsync{err: errors.New("scheduler full")}
	rec := do(t, newTestRouter(&fakeSync{}, async, false), http.MethodPost, "/async", "secret", `{"data":{}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending":true}`, rec.Body.String())
	assert.Equal(t, core.DefaultJobRunID, async.got.JobRunID)
}

func TestRouter_NodeMock(t *testing.T) {
	enabled := do(t, newTestRouter(&fakeSync{}, &fakeAsync{}, true), http.MethodPatch, "/nodemock", "", `{"pending":false}`)
	assert.Equal(t, http.StatusOK, enabled.Code)

	disabled := do(t, newTestRouter(&fakeSync{}, &fakeAsync{}, false), http.MethodPatch, "/nodemock", "", `{}`)
	assert.Equal(t, http.StatusNotFound, disabled.Code)
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = bearerToken("bearer   xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = bearerToken("")
	assert.False(t, ok)
}
