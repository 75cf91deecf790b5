package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/structviz/pkg/backend/native"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/httputil"
	"github.com/matzehuels/structviz/pkg/observability"
	"github.com/matzehuels/structviz/pkg/session"
)

func newTestServer(t *testing.T, opts ...native.Option) *httptest.Server {
	t.Helper()
	srv := New(native.New(opts...), nil, nil, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[sessionResponse](t, resp)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func action(t *testing.T, ts *httptest.Server, id, body string) *http.Response {
	t.Helper()
	return do(t, http.MethodPost, ts.URL+"/sessions/"+id+"/actions", body)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, healthResponse{Status: "ok", Ready: true}, decode[healthResponse](t, resp))
}

func TestHealthLoading(t *testing.T) {
	ts := newTestServer(t, native.WithLoadDelay(time.Hour))
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/sessions", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode[httputil.ErrorBody](t, resp)
	assert.Equal(t, errors.ErrCodeBackendUnavailable, body.Error.Code)
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[sessionResponse](t, resp)
	assert.Equal(t, session.Heap, created.Active)
	require.Len(t, created.Messages, 1)
	assert.Equal(t, "Data structures initialized", created.Messages[0].Text)
}

func TestUnknownSession(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/sessions/nope/messages", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decode[httputil.ErrorBody](t, resp).Error.Code)
}

func TestActionAndMessages(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	resp := action(t, ts, id, `{"structure":"heap","action":"insert","value":5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[actionResponse](t, resp)
	assert.Equal(t, session.Heap, got.Active)
	require.NotNil(t, got.Message)
	assert.Equal(t, "Inserted 5 into Binary Heap", got.Message.Text)

	resp = do(t, http.MethodGet, ts.URL+"/sessions/"+id+"/messages", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msgs := decode[[]session.Message](t, resp)
	assert.Len(t, msgs, 2)
}

func TestActionErrors(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"bad json", `{`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", `{"structure":"heap","action":"insert","value":1,"x":2}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown structure", `{"structure":"stack","action":"push"}`, http.StatusBadRequest, errors.ErrCodeInvalidStructure},
		{"graph not ready", `{"structure":"graph","action":"add-vertex"}`, http.StatusServiceUnavailable, errors.ErrCodeBackendUnavailable},
		{"vertex count", `{"structure":"graph","action":"init","vertices":0}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidVertexCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := action(t, ts, id, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decode[httputil.ErrorBody](t, resp).Error.Code)
		})
	}
}

func TestSearchResult(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	action(t, ts, id, `{"structure":"hash","action":"insert","key":12,"value":7}`)
	resp := action(t, ts, id, `{"structure":"hash","action":"search","key":12}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[actionResponse](t, resp)
	require.NotNil(t, got.Search)
	assert.Equal(t, session.SearchResult{Key: 12, Value: 7, Found: true}, *got.Search)

	resp = action(t, ts, id, `{"structure":"hash","action":"search","key":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[actionResponse](t, resp)
	assert.False(t, got.Search.Found)
	assert.Equal(t, session.LevelError, got.Message.Level)
}

func TestSearchResultMixedCase(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	action(t, ts, id, `{"structure":"hash","action":"insert","key":4,"value":9}`)
	resp := action(t, ts, id, `{"structure":"Hash","action":"Search","key":4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[actionResponse](t, resp)
	require.NotNil(t, got.Search)
	assert.Equal(t, session.SearchResult{Key: 4, Value: 9, Found: true}, *got.Search)
}

func TestFrame(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)
	action(t, ts, id, `{"structure":"avl","action":"insert","value":10}`)

	resp := do(t, http.MethodGet, ts.URL+"/sessions/"+id+"/frames/avl.svg", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "AVL TREE VISUALIZATION")

	resp = do(t, http.MethodGet, ts.URL+"/sessions/"+id+"/frames/queue", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGraphExport(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/sessions/"+id+"/graph?format=dot", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	action(t, ts, id, `{"structure":"graph","action":"init","vertices":3}`)
	action(t, ts, id, `{"structure":"graph","action":"add-edge","from":0,"to":1,"weight":4}`)
	action(t, ts, id, `{"structure":"graph","action":"run","algorithm":"bfs","start":0}`)

	resp = do(t, http.MethodGet, ts.URL+"/sessions/"+id+"/graph?format=dot&engine=neato", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/vnd.graphviz"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `layout="neato"`)
	assert.Contains(t, string(body), `0 -- 1 [label="4"`)
	assert.Contains(t, string(body), `xlabel="1"`)

	resp = do(t, http.MethodGet, ts.URL+"/sessions/"+id+"/graph?format=gif", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteSession(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	resp := do(t, http.MethodDelete, ts.URL+"/sessions/"+id+"/", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/sessions/"+id+"/messages", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConcurrentActions(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(map[string]any{"structure": "avl", "action": "insert", "value": i})
			resp, err := http.Post(ts.URL+"/sessions/"+id+"/actions", "application/json", bytes.NewReader(body))
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	resp := do(t, http.MethodGet, ts.URL+"/sessions/"+id+"/messages", "")
	assert.Len(t, decode[[]session.Message](t, resp), 21)
}

type httpRecorder struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *httpRecorder) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	srv := New(native.New(), nil, nil, nil)
	for _, path := range []string{"/healthz", "/sessions/missing/messages"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, rec.statuses)
}
