// Package cacheindex answers "is there already a cache entry for this key?"
// by enumerating the cache root. It never tests existence by opening a file:
// on virtual and networked drives a failed open does not mean the file is
// missing.
package cacheindex

import (
	"strings"

	"thumbcache/internal/filesystem"
	"thumbcache/internal/logging"
	"thumbcache/internal/metrics"
)

// Index is the existence oracle over a Lister.
type Index struct {
	lister filesystem.Lister
}

// New returns an Index backed by lister. A nil lister uses
// filesystem.NewDirLister.
func New(lister filesystem.Lister) *Index {
	if lister == nil {
		lister = filesystem.NewDirLister()
	}
	return &Index{lister: lister}
}

// Entries returns the names of the regular entries in dir in enumeration
// order. A missing or unreadable directory yields no entries.
func (x *Index) Entries(dir string) []string {
	entries, err := x.lister.List(dir)
	if err != nil {
		logging.Debug("cache index: listing %s failed, treating as empty: %v", dir, err)
		metrics.CacheLookupFaults.Inc()
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		names = append(names, e.Name)
	}
	return names
}

// Lookup returns the first entry in dir whose name, compared without regard
// to case, starts with key followed by a dot.
func (x *Index) Lookup(dir, key string) (string, bool) {
	prefix := filesystem.FoldName(key + ".")
	for _, name := range x.Entries(dir) {
		if strings.HasPrefix(filesystem.FoldName(name), prefix) {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return name, true
		}
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	return "", false
}

// Exists reports whether dir lists an entry named filename, compared without
// regard to case or Unicode normalization form.
func (x *Index) Exists(dir, filename string) bool {
	for _, name := range x.Entries(dir) {
		if filesystem.SameName(name, filename) {
			return true
		}
	}
	return false
}
