package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/glclock/assets"
	"github.com/kjkrol/glclock/pkg/asset"
)

func newTestServer(t *testing.T, logs io.Writer) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<canvas id=\"app\"></canvas>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.wasm"), []byte("\x00asm"), 0o644))

	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	srv := httptest.NewServer(newHandler(dir, logger))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHandler_ServesPageAndShaders(t *testing.T) {
	var logs bytes.Buffer
	srv := newTestServer(t, &logs)

	status, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `id="app"`)

	status, body = get(t, srv.URL+"/main.wasm")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "\x00asm", body)

	status, _ = get(t, srv.URL+"/missing.js")
	assert.Equal(t, http.StatusNotFound, status)

	assert.Contains(t, logs.String(), "path=/main.wasm")
	assert.Contains(t, logs.String(), "status=404")
}

func TestHandler_ShadersLoadThroughHTTPSource(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	pair, err := asset.LoadPair(context.Background(), asset.NewHTTP(srv.URL), nil, assets.VertexShader, assets.FragmentShader)

	require.NoError(t, err)
	assert.Contains(t, pair.Vertex, "a_position")
	assert.Contains(t, pair.Fragment, "u_timeInput")
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("serve did not return after cancel")
	}
}
