package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aziwar/dr-islam-website/backend/internal/config"
	"github.com/aziwar/dr-islam-website/backend/internal/storage"
)

func writeSiteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	siteDir := t.TempDir()
	writeSiteFile(t, siteDir, "index-en.html", "<html>english home</html>")
	writeSiteFile(t, siteDir, "index.html", "<html dir=\"rtl\">arabic home</html>")
	writeSiteFile(t, siteDir, "styles.css", "body{direction:ltr}")

	dsnName := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", dsnName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Config{
		Environment:        "test",
		AdminToken:         "server-test-token",
		LockoutThreshold:   5,
		LockoutWindow:      15 * time.Minute,
		LockoutDuration:    30 * time.Minute,
		AdminRequestLimit:  100,
		AdminRequestWindow: time.Minute,
		MaxUploadBytes:     1024 * 1024,
		SiteDir:            siteDir,
	}

	srv, err := New(db, storage.NewMemoryStore(), cfg)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func TestServer_CloseStopsScheduler(t *testing.T) {
	srv := newTestServer(t)

	done := make(chan struct{})
	go func() {
		srv.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return after stopping the scheduler")
	}
	srv.Close() // idempotent
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	req.RemoteAddr = "10.0.0.1:1000"
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	return w
}

func TestServer_LanguageRouting(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"root serves english", "/", "english home"},
		{"ar serves arabic", "/ar", "arabic home"},
		{"ar slash serves arabic", "/ar/", "arabic home"},
		{"ar asset resolves to shared asset", "/ar/styles.css", "direction:ltr"},
		{"direct asset", "/styles.css", "direction:ltr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(srv, tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestServer_SiteHeaders(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=3600")

	w = get(srv, "/styles.css")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, w.Header().Get("Cache-Control"), "immutable")
}

func TestServer_NotFound(t *testing.T) {
	srv := newTestServer(t)

	// Unknown pages get the bilingual 404, unknown API paths get JSON.
	w := get(srv, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "404")

	w = get(srv, "/api/no-such-route")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestServer_PathTraversalBlocked(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/../../etc/passwd")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "root:")
}

func TestServer_SecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	w := get(srv, "/")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Frame-Options"))
}
