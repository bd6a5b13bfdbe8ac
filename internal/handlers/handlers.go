package handlers

import (
	"path/filepath"
	"time"

	"thumbcache/internal/cacheindex"
	"thumbcache/internal/filesystem"
	"thumbcache/internal/mediatypes"
	"thumbcache/internal/metrics"
)

// Config locates the cache root the handlers serve from.
type Config struct {
	ResourceRoot string
	Collection   string
	Retry        filesystem.RetryConfig
}

// Handlers serves cache entries by cache-relative path.
type Handlers struct {
	cfg     Config
	index   *cacheindex.Index
	started time.Time
}

// New returns Handlers reading through index. A nil index lists the
// filesystem directly.
func New(cfg Config, index *cacheindex.Index) *Handlers {
	if index == nil {
		index = cacheindex.New(nil)
	}
	if cfg.Retry.MaxRetries == 0 && cfg.Retry.InitialBackoff == 0 {
		cfg.Retry = filesystem.DefaultRetryConfig()
	}
	return &Handlers{cfg: cfg, index: index, started: time.Now()}
}

// CacheDir returns the absolute cache root.
func (h *Handlers) CacheDir() string {
	return filepath.Join(h.cfg.ResourceRoot, h.cfg.Collection)
}

// entries returns the cacheable file names in the cache root.
func (h *Handlers) entries() []string {
	var names []string
	for _, name := range h.index.Entries(h.CacheDir()) {
		if mediatypes.IsCacheable(name) {
			names = append(names, name)
		}
	}
	return names
}

// GetStats implements metrics.StatsProvider.
func (h *Handlers) GetStats() metrics.Stats {
	return metrics.Stats{
		Collection: h.cfg.Collection,
		Entries:    len(h.entries()),
	}
}
