package batch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"thumbcache/internal/cacheindex"
	"thumbcache/internal/filesystem"
	"thumbcache/internal/logging"
	"thumbcache/internal/media"
	"thumbcache/internal/metrics"
	"thumbcache/internal/transfer"
)

// Item is one entry of a batch.
type Item = media.Item

// Deps are the collaborators a Driver calls out to. Nil fields get the
// production implementation.
type Deps struct {
	Renderer media.Renderer
	Lister   filesystem.Lister
	Runner   transfer.Runner
}

// Result is the outcome of one item. Path is empty when the item was
// skipped, and Err says why.
type Result struct {
	Item    Item
	Path    string
	Outcome media.Outcome
	Err     error
}

// Summary counts results by outcome.
type Summary struct {
	Total   int `json:"total"`
	Cached  int `json:"cached"`
	Built   int `json:"built"`
	Skipped int `json:"skipped"`
}

// Report lists results in input order.
type Report struct {
	Results []Result
	Summary Summary
}

// Paths returns the cache-relative path of every result, empty for skips.
func (r Report) Paths() []string {
	paths := make([]string, len(r.Results))
	for i, res := range r.Results {
		paths[i] = res.Path
	}
	return paths
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	r.Summary.Total++
	switch res.Outcome {
	case media.OutcomeCached:
		r.Summary.Cached++
	case media.OutcomeBuilt:
		r.Summary.Built++
	default:
		r.Summary.Skipped++
	}
}

// Driver runs batches of items one at a time against a single cache root.
type Driver struct {
	cfg      Config
	lister   filesystem.Lister
	index    *cacheindex.Index
	transfer *transfer.Transferer
	builder  *media.Builder
	resolver *media.Resolver
}

// New validates cfg and wires the pipeline. A ConfigError means no item
// can be processed.
func New(cfg Config, deps Deps) (*Driver, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		logging.Error("batch: %v", err)
		return nil, err
	}

	if deps.Lister == nil {
		deps.Lister = &filesystem.DirLister{Retry: cfg.Retry}
	}
	if deps.Renderer == nil {
		deps.Renderer = media.NewImageRenderer()
	}

	index := cacheindex.New(deps.Lister)
	t := transfer.New(transfer.Config{
		Platform:    cfg.Platform,
		Prefix:      cfg.Collection,
		StagingDir:  cfg.StagingDir,
		Interpreter: cfg.Interpreter,
		MirrorTool:  cfg.MirrorTool,
		Retry:       cfg.Retry,
	}, index, deps.Runner)

	d := &Driver{
		cfg:      cfg,
		lister:   deps.Lister,
		index:    index,
		transfer: t,
	}
	d.builder = media.NewBuilder(media.BuilderConfig{
		CacheDir:   cfg.CacheDir(),
		StagingDir: cfg.StagingDir,
		Mode:       cfg.SwitchMode,
		Retry:      cfg.Retry,
	}, deps.Renderer, index, t)
	d.resolver = media.NewResolver(media.ResolverConfig{
		CacheDir:   cfg.CacheDir(),
		Subfolders: cfg.PreviewSubfolders,
	}, deps.Lister, index, t)

	logging.Debug("batch: cache root %s, platform %s, stages %v", cfg.CacheDir(), cfg.Platform, t.Stages())
	return d, nil
}

// Config returns the effective configuration.
func (d *Driver) Config() Config {
	return d.cfg
}

// Stages returns the transfer stages in the order they are tried.
func (d *Driver) Stages() []transfer.Stage {
	return d.transfer.Stages()
}

// RelativePath returns the cache-relative path of the cache entry name.
func (d *Driver) RelativePath(name string) string {
	return d.transfer.RelativePath(name)
}

// Index returns the cache index the driver checks entries against.
func (d *Driver) Index() *cacheindex.Index {
	return d.index
}

// Builder returns the switch thumbnail builder.
func (d *Driver) Builder() *media.Builder {
	return d.builder
}

// Resolver returns the character preview resolver.
func (d *Driver) Resolver() *media.Resolver {
	return d.resolver
}

// RunSwitches renders a thumbnail for every item. Items without a size get
// the configured default.
func (d *Driver) RunSwitches(ctx context.Context, items []Item) Report {
	return d.run(ctx, "switch", items, func(ctx context.Context, item Item) (string, media.Outcome, error) {
		if item.Size == 0 {
			item.Size = d.cfg.Size
		}
		return d.builder.Thumbnail(ctx, item)
	})
}

// RunCharacters resolves a preview for every visible subfolder of root, in
// listing order. An unreadable root yields an empty report.
func (d *Driver) RunCharacters(ctx context.Context, root string) Report {
	return d.run(ctx, "character", d.characterItems(root), d.resolver.Preview)
}

// characterItems turns the visible subfolders of root into items.
func (d *Driver) characterItems(root string) []Item {
	entries, err := d.lister.List(root)
	if err != nil {
		logging.Warn("batch: cannot list character root %s: %v", root, err)
		return nil
	}

	var items []Item
	for _, e := range entries {
		if !e.IsDir || strings.HasPrefix(e.Name, ".") {
			continue
		}
		items = append(items, Item{
			DisplayName: e.Name,
			Locator:     filepath.Join(root, e.Name),
			Size:        d.cfg.Size,
		})
	}
	return items
}

func (d *Driver) run(ctx context.Context, kind string, items []Item, produce func(context.Context, Item) (string, media.Outcome, error)) Report {
	start := time.Now()
	report := Report{Results: make([]Result, 0, len(items))}

	for _, item := range items {
		res := Result{Item: item}
		if err := ctx.Err(); err != nil {
			res.Err = err
		} else {
			res.Path, res.Outcome, res.Err = produce(ctx, item)
		}
		if res.Err != nil {
			res.Path, res.Outcome = "", media.OutcomeSkipped
		}

		metrics.BatchItemsTotal.WithLabelValues(kind, res.Outcome.String()).Inc()
		report.add(res)
	}

	metrics.BatchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	s := report.Summary
	logging.Info("batch %s: %d items, %d cached, %d built, %d skipped in %v",
		kind, s.Total, s.Cached, s.Built, s.Skipped, time.Since(start).Round(time.Millisecond))
	return report
}
