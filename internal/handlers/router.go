package handlers

import (
	"net/http"

	"thumbcache/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions toggles optional routes and middleware.
type RouterOptions struct {
	MetricsEnabled  bool
	LogHealthChecks bool
}

// NewRouter registers every route on a new mux.Router.
func NewRouter(h *Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = opts.LogHealthChecks
	r.Use(middleware.Logger(loggingConfig))
	if opts.MetricsEnabled {
		r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
	}

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)

	r.HandleFunc("/thumbnails/{path:.+}", h.GetThumbnail).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/api/entries", h.ListEntries).Methods(http.MethodGet)

	if opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	return r
}
