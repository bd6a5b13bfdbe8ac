package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"thumbcache/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	Collection string `json:"collection"`
	Entries    int    `json:"entries"`
	GoVersion  string `json:"goVersion"`
	Error      string `json:"error,omitempty"`
}

// HealthCheck reports whether the resource root is reachable. A cache root
// that does not exist yet is healthy: it is created by the first transfer.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:     statusHealthy,
		Version:    startup.Version,
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Collection: h.cfg.Collection,
		GoVersion:  runtime.Version(),
	}

	status := http.StatusOK
	if info, err := os.Stat(h.cfg.ResourceRoot); err != nil || !info.IsDir() {
		response.Status = statusDegraded
		response.Error = "resource root unavailable"
		status = http.StatusServiceUnavailable
	} else {
		response.Entries = h.GetStats().Entries
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeJSON(w, response)
}

// LivenessCheck always returns 200 while the server is running
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{"status": "alive"})
	}
}
