package media

import (
	"context"
	"errors"
	"path/filepath"

	"thumbcache/internal/cacheindex"
	"thumbcache/internal/cachekey"
	"thumbcache/internal/filesystem"
	"thumbcache/internal/logging"
	"thumbcache/internal/mediatypes"
	"thumbcache/internal/transfer"
)

// ErrNoPreview is returned when an item's folder holds no preview image.
var ErrNoPreview = errors.New("no preview image found")

// DefaultPreviewSubfolders are the folder names searched when no file in
// the item folder follows a preview naming convention.
var DefaultPreviewSubfolders = []string{"preview", "previews", "thumbnail", "thumbnails"}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	CacheDir   string
	Subfolders []string
}

// Resolver caches preview images that already exist inside item folders.
type Resolver struct {
	cfg      ResolverConfig
	lister   filesystem.Lister
	index    *cacheindex.Index
	transfer *transfer.Transferer
}

// NewResolver returns a Resolver. A nil lister uses filesystem.NewDirLister.
func NewResolver(cfg ResolverConfig, lister filesystem.Lister, index *cacheindex.Index, t *transfer.Transferer) *Resolver {
	if lister == nil {
		lister = filesystem.NewDirLister()
	}
	if index == nil {
		index = cacheindex.New(lister)
	}
	if cfg.Subfolders == nil {
		cfg.Subfolders = DefaultPreviewSubfolders
	}
	return &Resolver{cfg: cfg, lister: lister, index: index, transfer: t}
}

// Key returns the cache key of a folder item.
func (r *Resolver) Key(item Item) string {
	return cachekey.Derive(item.DisplayName, item.Locator)
}

// Resolve returns the cache-relative path of item's preview, or false when
// the item has none.
func (r *Resolver) Resolve(ctx context.Context, item Item) (string, bool) {
	rel, _, err := r.Preview(ctx, item)
	return rel, err == nil
}

// Preview is Resolve with the outcome and the reason for a skip.
func (r *Resolver) Preview(ctx context.Context, item Item) (string, Outcome, error) {
	key := r.Key(item)

	if name, ok := r.index.Lookup(r.cfg.CacheDir, key); ok {
		logging.Debug("resolver: cache hit %s for %q", name, item.DisplayName)
		return r.transfer.RelativePath(name), OutcomeCached, nil
	}

	source, ok := FindPreviewSource(r.lister, item.Locator, item.DisplayName, r.cfg.Subfolders)
	if !ok {
		logging.Debug("resolver: no preview for %q in %s", item.DisplayName, item.Locator)
		return "", OutcomeSkipped, ErrNoPreview
	}

	destName := key + mediatypes.Ext(source)
	rel, err := r.transfer.Transfer(ctx, source, r.cfg.CacheDir, destName)
	if err != nil {
		return "", OutcomeSkipped, err
	}
	return rel, OutcomeBuilt, nil
}

// FindPreviewSource locates a preview image for name inside folder. Files
// named <name>_preview.<ext> win over <name>.<ext>, with extensions tried in
// mediatypes.CacheExtensions order; names compare case-insensitively. When
// neither exists, the first cacheable image in the first matching subfolder
// is used, both in enumeration order.
func FindPreviewSource(lister filesystem.Lister, folder, name string, subfolders []string) (string, bool) {
	entries, err := lister.List(folder)
	if err != nil {
		logging.Debug("resolver: cannot list %s: %v", folder, err)
		return "", false
	}

	for _, stem := range []string{name + "_preview", name} {
		for _, ext := range mediatypes.CacheExtensions {
			want := stem + ext
			for _, e := range entries {
				if !e.IsDir && filesystem.SameName(e.Name, want) {
					return filepath.Join(folder, e.Name), true
				}
			}
		}
	}

	for _, e := range entries {
		if !e.IsDir || !isPreviewSubfolder(e.Name, subfolders) {
			continue
		}
		dir := filepath.Join(folder, e.Name)
		files, err := lister.List(dir)
		if err != nil {
			logging.Debug("resolver: cannot list %s: %v", dir, err)
			continue
		}
		for _, f := range files {
			if !f.IsDir && mediatypes.IsCacheable(f.Name) {
				return filepath.Join(dir, f.Name), true
			}
		}
	}

	return "", false
}

func isPreviewSubfolder(name string, subfolders []string) bool {
	for _, s := range subfolders {
		if filesystem.SameName(name, s) {
			return true
		}
	}
	return false
}
