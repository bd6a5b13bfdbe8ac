package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestHandlers(t *testing.T) (*Handlers, string) {
	t.Helper()
	root := t.TempDir()
	cache := filepath.Join(root, "BHS_SYN_CHset")
	if err := os.MkdirAll(cache, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, data := range map[string]string{
		"abc_12345678.png":            "png-data",
		"eye_0a0b0c0d_k3j4h5g6f7.PNG": "upper",
		"notes.txt":                   "not an image",
	} {
		if err := os.WriteFile(filepath.Join(cache, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	h := New(Config{ResourceRoot: root, Collection: "BHS_SYN_CHset"}, nil)
	return h, cache
}

func serve(t *testing.T, h *Handlers, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(h, RouterOptions{MetricsEnabled: true})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestGetThumbnail(t *testing.T) {
	h, _ := newTestHandlers(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
		wantType   string
	}{
		{"served by cache-relative path", "/thumbnails/BHS_SYN_CHset/abc_12345678", http.StatusOK, "png-data", "image/png"},
		{"case-insensitive extension", "/thumbnails/BHS_SYN_CHset/eye_0a0b0c0d_k3j4h5g6f7", http.StatusOK, "upper", "image/png"},
		{"unknown key", "/thumbnails/BHS_SYN_CHset/zzz_00000000", http.StatusNotFound, "", ""},
		{"key prefix is not a match", "/thumbnails/BHS_SYN_CHset/eye_0a0b0c0d", http.StatusNotFound, "", ""},
		{"other collection", "/thumbnails/OTHER/abc_12345678", http.StatusNotFound, "", ""},
		{"no collection", "/thumbnails/abc_12345678", http.StatusNotFound, "", ""},
		{"non-image entry", "/thumbnails/BHS_SYN_CHset/notes", http.StatusNotFound, "", ""},
		{"invalid key", "/thumbnails/BHS_SYN_CHset/Bad-Key", http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, http.MethodGet, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if tt.wantType != "" && rec.Header().Get("Content-Type") != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.wantType)
			}
		})
	}
}

func TestListEntries(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := serve(t, h, http.MethodGet, "/api/entries")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp EntriesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Collection != "BHS_SYN_CHset" {
		t.Errorf("Collection = %q", resp.Collection)
	}
	got := strings.Join(resp.Paths, ",")
	want := "BHS_SYN_CHset/abc_12345678,BHS_SYN_CHset/eye_0a0b0c0d_k3j4h5g6f7"
	if got != want {
		t.Errorf("Paths = %s, want %s", got, want)
	}
}

func TestHealthCheck(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := serve(t, h, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != statusHealthy || resp.Entries != 2 {
		t.Errorf("health = %+v", resp)
	}

	missing := New(Config{ResourceRoot: filepath.Join(t.TempDir(), "gone"), Collection: "x"}, nil)
	rec = serve(t, missing, http.MethodGet, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status for missing root = %d, want 503", rec.Code)
	}
}

func TestLivenessAndVersion(t *testing.T) {
	h, _ := newTestHandlers(t)

	if rec := serve(t, h, http.MethodHead, "/healthz"); rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("HEAD /healthz = %d with %d body bytes", rec.Code, rec.Body.Len())
	}

	rec := serve(t, h, http.MethodGet, "/version")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"goVersion"`) {
		t.Errorf("GET /version = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := serve(t, h, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", rec.Code)
	}

	router := NewRouter(h, RouterOptions{})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics with metrics disabled = %d, want 404", rec.Code)
	}
}

func TestGetStats(t *testing.T) {
	h, _ := newTestHandlers(t)
	stats := h.GetStats()
	if stats.Collection != "BHS_SYN_CHset" || stats.Entries != 2 {
		t.Errorf("GetStats() = %+v", stats)
	}
}
