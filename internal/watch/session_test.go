package watch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDashboardFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewSessionValidation(t *testing.T) {
	_, err := NewSession(nil)
	assert.Error(t, err)

	_, err = NewSession(&SessionConfig{Address: ":0"})
	assert.Error(t, err)

	_, err = NewSession(&SessionConfig{Path: "does-not-exist.json", Address: ":0"})
	assert.Error(t, err)
}

func TestSessionServesPreview(t *testing.T) {
	path := writeDashboardFile(t, `{
		"title": "Load Test",
		"panels": [{
			"type": "gauge",
			"title": "VUs",
			"targets": [{"datasource": {"type": "prometheus"}, "expr": "vus"}]
		}]
	}`)

	s, err := NewSession(&SessionConfig{Path: path, Address: ":0"})
	require.NoError(t, err)
	defer s.preview.Close()

	// Before the first conversion there is nothing to serve
	req := httptest.NewRequest(http.MethodGet, "/dashboard.json", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, s.reconvert([]string{path}))

	req = httptest.NewRequest(http.MethodGet, "/dashboard.json", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"Load Test"`)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashmorph")
}

func TestSessionReconvertError(t *testing.T) {
	path := writeDashboardFile(t, "{")

	s, err := NewSession(&SessionConfig{Path: path, Address: ":0"})
	require.NoError(t, err)
	defer s.preview.Close()

	// A broken file is reported, not fatal
	require.NoError(t, s.reconvert([]string{path}))

	last := s.preview.Last()
	require.NotNil(t, last)
	assert.Equal(t, "error", last.Type)
	assert.Contains(t, last.Error, "failed to parse dashboard")
}

func TestSessionReconvertOnChange(t *testing.T) {
	path := writeDashboardFile(t, `{"title": "Before", "panels": []}`)

	s, err := NewSession(&SessionConfig{Path: path, Address: ":0", Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	require.NoError(t, s.reconvert([]string{path}))
	require.NoError(t, s.watcher.Start())
	defer func() {
		s.watcher.Stop()
		s.preview.Close()
	}()

	require.NoError(t, os.WriteFile(path, []byte(`{"title": "After", "panels": []}`), 0644))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if last := s.preview.Last(); last != nil && last.Dashboard != nil && last.Dashboard.Name == "After" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("session never picked up the change")
}
