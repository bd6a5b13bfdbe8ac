package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"thumbcache/internal/cacheindex"
	"thumbcache/internal/cachekey"
	"thumbcache/internal/filesystem"
	"thumbcache/internal/logging"
	"thumbcache/internal/metrics"
	"thumbcache/internal/platform"
	"thumbcache/internal/transfer"
)

// ErrRenderFailed is matched by errors for renders that left no staged file.
var ErrRenderFailed = errors.New("render produced no staged file")

// thumbnailExt is the format every rendered thumbnail is written in.
const thumbnailExt = ".png"

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// CacheDir is the absolute cache root that entries are transferred into.
	CacheDir   string
	StagingDir string
	Mode       Mode
	Retry      filesystem.RetryConfig
}

// Builder renders switch-layer thumbnails through the staging directory.
type Builder struct {
	cfg      BuilderConfig
	renderer Renderer
	index    *cacheindex.Index
	transfer *transfer.Transferer
}

// NewBuilder returns a Builder. index is consulted only in ModeReuse.
func NewBuilder(cfg BuilderConfig, renderer Renderer, index *cacheindex.Index, t *transfer.Transferer) *Builder {
	if cfg.StagingDir == "" {
		cfg.StagingDir = platform.StagingDir()
	}
	if index == nil {
		index = cacheindex.New(nil)
	}
	return &Builder{cfg: cfg, renderer: renderer, index: index, transfer: t}
}

// Key returns the cache key of item. The size class is part of the key
// context so a size change never returns a render of the old size.
func (b *Builder) Key(item Item) string {
	return cachekey.Derive(item.DisplayName, cachekey.Context(item.Locator, item.Size.String()))
}

// Build returns the cache-relative path of a thumbnail for item, or false
// when none could be produced.
func (b *Builder) Build(ctx context.Context, item Item) (string, bool) {
	rel, _, err := b.Thumbnail(ctx, item)
	return rel, err == nil
}

// Thumbnail is Build with the outcome and the fault that caused a skip.
func (b *Builder) Thumbnail(ctx context.Context, item Item) (string, Outcome, error) {
	key := b.Key(item)
	destName := key + thumbnailExt

	if b.cfg.Mode == ModeReuse {
		if name, ok := b.index.Lookup(b.cfg.CacheDir, key); ok {
			logging.Debug("builder: reusing %s for %q", name, item.DisplayName)
			return b.transfer.RelativePath(name), OutcomeCached, nil
		}
	}

	suffix, err := cachekey.RandomSuffix()
	if err != nil {
		return "", OutcomeSkipped, fmt.Errorf("mint staging name: %w", err)
	}
	stagedName := key + "_" + suffix + thumbnailExt
	if b.cfg.Mode == ModeRegenerate {
		destName = stagedName
	}
	staged := filepath.Join(b.cfg.StagingDir, stagedName)

	if err := b.render(ctx, item, staged); err != nil {
		logging.Warn("builder: skipping %q: %v", item.DisplayName, err)
		return "", OutcomeSkipped, err
	}

	rel, err := b.transfer.Transfer(ctx, staged, b.cfg.CacheDir, destName)
	if err != nil {
		logging.Warn("builder: staged render kept at %s: %v", staged, err)
		return "", OutcomeSkipped, err
	}

	if err := os.Remove(staged); err != nil && !os.IsNotExist(err) {
		logging.Debug("builder: failed to remove staged file %s: %v", staged, err)
	}
	return rel, OutcomeBuilt, nil
}

// render draws item into staged and confirms the file with a direct stat.
// The staging directory is ASCII-safe, so the stat is reliable there. The
// render is not retried.
func (b *Builder) render(ctx context.Context, item Item, staged string) error {
	start := time.Now()
	renderErr := b.renderer.Render(ctx, item.Locator, item.Size.Pixels(), staged)
	metrics.RenderDuration.Observe(time.Since(start).Seconds())

	info, statErr := filesystem.StatWithRetry(staged, b.cfg.Retry)
	if renderErr == nil && statErr == nil && info.Mode().IsRegular() {
		metrics.RendersTotal.WithLabelValues("success").Inc()
		return nil
	}
	metrics.RendersTotal.WithLabelValues("error").Inc()

	if statErr == nil {
		// A render that reported an error may have left a partial file.
		if err := os.Remove(staged); err != nil {
			logging.Debug("builder: failed to remove partial render %s: %v", staged, err)
		}
	}

	cause := renderErr
	if cause == nil {
		cause = statErr
	}
	if cause == nil {
		cause = fmt.Errorf("%s is not a regular file", staged)
	}
	return fmt.Errorf("%w: %s -> %s: %w", ErrRenderFailed, item.Locator, staged, cause)
}
