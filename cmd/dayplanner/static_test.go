package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

// TestStaticStylesheetServed verifies that the static file server serves
// the dashboard stylesheet at /static/dashboard.css and that it contains
// the chart accent colour.
func TestStaticStylesheetServed(t *testing.T) {
	// Serve files from the repo's static directory (relative to cmd/dayplanner)
	staticDir := filepath.Join("..", "..", "static")
	router := mux.NewRouter()
	fs := http.FileServer(http.Dir(staticDir))
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))

	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/static/dashboard.css")
	if err != nil {
		t.Fatalf("failed to GET dashboard.css: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "text/css") {
		t.Fatalf("unexpected Content-Type: %s", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "rgb(124, 92, 255)") {
		t.Fatalf("accent colour not found in dashboard.css")
	}
}

func TestStaticMissingFile(t *testing.T) {
	router := mux.NewRouter()
	fs := http.FileServer(http.Dir(filepath.Join("..", "..", "static")))
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))

	req := httptest.NewRequest("GET", "/static/countries.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing file, got %d", w.Code)
	}
}
