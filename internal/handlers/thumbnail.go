package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"thumbcache/internal/cachekey"
	"thumbcache/internal/filesystem"
	"thumbcache/internal/logging"
	"thumbcache/internal/mediatypes"

	"github.com/gorilla/mux"
)

// GetThumbnail serves the entry named by a cache-relative path such as
// BHS_SYN_CHset/abc_12345678. Entries are never overwritten, so responses
// are cacheable indefinitely.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	rel := mux.Vars(r)["path"]

	collection, key, ok := strings.Cut(rel, "/")
	if !ok || !filesystem.SameName(collection, h.cfg.Collection) {
		http.NotFound(w, r)
		return
	}
	if !cachekey.Valid(key) {
		http.Error(w, "invalid cache key", http.StatusBadRequest)
		return
	}

	name, found := h.index.Lookup(h.CacheDir(), key)
	if !found || !mediatypes.IsCacheable(name) {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.CacheDir(), name)
	file, err := filesystem.OpenWithRetry(path, h.cfg.Retry)
	if err != nil {
		logging.Warn("failed to open cache entry %s: %v", path, err)
		http.Error(w, "cache entry unavailable", http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Debug("failed to close %s: %v", path, err)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		http.Error(w, "cache entry unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mediatypes.GetMimeType(mediatypes.Ext(name)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, name, info.ModTime(), file)
}

// EntriesResponse lists the cache-relative paths of a collection.
type EntriesResponse struct {
	Collection string   `json:"collection"`
	Paths      []string `json:"paths"`
}

// ListEntries returns every cache entry as a cache-relative path.
func (h *Handlers) ListEntries(w http.ResponseWriter, _ *http.Request) {
	names := h.entries()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, h.cfg.Collection+"/"+mediatypes.TrimExt(name))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, EntriesResponse{Collection: h.cfg.Collection, Paths: paths})
}
