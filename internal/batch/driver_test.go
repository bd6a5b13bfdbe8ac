package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thumbcache/internal/media"
	"thumbcache/internal/platform"
	"thumbcache/internal/transfer"
)

// fakeRenderer writes the locator as file content; locators starting with
// "broken" produce nothing.
type fakeRenderer struct {
	sizes []int
}

func (f *fakeRenderer) Render(_ context.Context, locator string, size int, target string) error {
	f.sizes = append(f.sizes, size)
	if strings.HasPrefix(locator, "broken") {
		return nil
	}
	return os.WriteFile(target, []byte(locator), 0o644)
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		ResourceRoot: t.TempDir(),
		StagingDir:   t.TempDir(),
		Platform:     platform.Posix,
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNew_ConfigFaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	mustWrite(t, file)

	tests := []struct {
		name      string
		cfg       Config
		field     string
		noRootErr bool
	}{
		{"empty root", Config{}, "ResourceRoot", true},
		{"missing root", Config{ResourceRoot: filepath.Join(t.TempDir(), "missing")}, "ResourceRoot", true},
		{"root is a file", Config{ResourceRoot: file}, "ResourceRoot", true},
		{"nested collection", Config{ResourceRoot: t.TempDir(), Collection: "a/b"}, "Collection", false},
		{"non-ASCII collection", Config{ResourceRoot: t.TempDir(), Collection: "キャラ設定"}, "Collection", false},
		{"collection with space", Config{ResourceRoot: t.TempDir(), Collection: "my set"}, "Collection", false},
		{"collection with shell metacharacters", Config{ResourceRoot: t.TempDir(), Collection: "set;$(rm)"}, "Collection", false},
		{"collection with quote", Config{ResourceRoot: t.TempDir(), Collection: "it's"}, "Collection", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.cfg, Deps{})
			if d != nil {
				t.Error("New() returned a driver for an invalid config")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("New() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
			if errors.Is(err, ErrNoCacheRoot) != tt.noRootErr {
				t.Errorf("errors.Is(err, ErrNoCacheRoot) = %v, want %v", !tt.noRootErr, tt.noRootErr)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := testConfig(t)
	d, err := New(cfg, Deps{Renderer: &fakeRenderer{}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := d.Config()
	if got.Collection != DefaultCollection {
		t.Errorf("Collection = %q, want %q", got.Collection, DefaultCollection)
	}
	if got.Size != media.SizeLarge {
		t.Errorf("Size = %v, want large", got.Size)
	}
	if got.CacheDir() != filepath.Join(cfg.ResourceRoot, DefaultCollection) {
		t.Errorf("CacheDir() = %q", got.CacheDir())
	}
	if _, err := os.Stat(got.CacheDir()); !os.IsNotExist(err) {
		t.Error("cache root created before any transfer")
	}
	if entries, _ := os.ReadDir(cfg.ResourceRoot); len(entries) != 0 {
		t.Errorf("write test left files behind: %v", entries)
	}
}

func TestRunCharacters_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	root := filepath.Join(t.TempDir(), "キャラ設定")
	mustWrite(t, filepath.Join(root, "Alpha", "Alpha_preview.png"))
	mustWrite(t, filepath.Join(root, "Beta", "preview", "generic.jpg"))
	mustWrite(t, filepath.Join(root, "Gamma", "Gamma.txt"))
	mustWrite(t, filepath.Join(root, ".hidden", ".hidden.png"))
	mustWrite(t, filepath.Join(root, "readme.png"))

	d, err := New(cfg, Deps{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	report := d.RunCharacters(context.Background(), root)
	paths := report.Paths()
	if len(paths) != 3 {
		t.Fatalf("RunCharacters() returned %d results, want 3: %v", len(paths), paths)
	}

	wantNames := []string{"Alpha", "Beta", "Gamma"}
	for i, res := range report.Results {
		if res.Item.DisplayName != wantNames[i] {
			t.Errorf("result %d is %q, want %q", i, res.Item.DisplayName, wantNames[i])
		}
	}
	if paths[0] == "" || paths[1] == "" {
		t.Errorf("expected paths for Alpha and Beta, got %v", paths)
	}
	if paths[2] != "" {
		t.Errorf("Gamma path = %q, want empty", paths[2])
	}
	if !errors.Is(report.Results[2].Err, media.ErrNoPreview) {
		t.Errorf("Gamma error = %v, want ErrNoPreview", report.Results[2].Err)
	}
	for _, p := range paths[:2] {
		if !strings.HasPrefix(p, DefaultCollection+"/") || strings.Contains(p, ".") {
			t.Errorf("path %q is not an extensionless cache-relative path", p)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.ResourceRoot, paths[1]+".jpg")); err != nil {
		t.Errorf("Beta entry not stored with source extension: %v", err)
	}

	want := Summary{Total: 3, Built: 2, Skipped: 1}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}

	again := d.RunCharacters(context.Background(), root)
	want = Summary{Total: 3, Cached: 2, Skipped: 1}
	if again.Summary != want {
		t.Errorf("second Summary = %+v, want %+v", again.Summary, want)
	}
	for i := range paths {
		if again.Results[i].Path != paths[i] {
			t.Errorf("second run path %d = %q, want %q", i, again.Results[i].Path, paths[i])
		}
	}
}

func TestRunCharacters_UnreadableRoot(t *testing.T) {
	d, err := New(testConfig(t), Deps{})
	if err != nil {
		t.Fatal(err)
	}
	report := d.RunCharacters(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if report.Summary.Total != 0 || len(report.Results) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestRunSwitches_SkipsRenderFaults(t *testing.T) {
	renderer := &fakeRenderer{}
	d, err := New(testConfig(t), Deps{Renderer: renderer})
	if err != nil {
		t.Fatal(err)
	}

	items := []Item{
		{DisplayName: "Eyes Open", Locator: "layers/eyes/open"},
		{DisplayName: "Eyes Half", Locator: "broken/eyes/half"},
		{DisplayName: "Eyes Closed", Locator: "layers/eyes/closed", Size: media.SizeSmall},
	}
	report := d.RunSwitches(context.Background(), items)

	if got := report.Summary; got != (Summary{Total: 3, Built: 2, Skipped: 1}) {
		t.Errorf("Summary = %+v", got)
	}
	if !errors.Is(report.Results[1].Err, media.ErrRenderFailed) {
		t.Errorf("skipped item error = %v, want ErrRenderFailed", report.Results[1].Err)
	}
	if report.Results[0].Path == "" || report.Results[1].Path != "" || report.Results[2].Path == "" {
		t.Errorf("paths = %v", report.Paths())
	}

	wantSizes := []int{256, 256, 128}
	for i, s := range renderer.sizes {
		if s != wantSizes[i] {
			t.Errorf("render %d size = %d, want %d", i, s, wantSizes[i])
		}
	}
}

func TestRunSwitches_CopyFaultDoesNotAbort(t *testing.T) {
	cfg := testConfig(t)
	// A file where the cache root should be makes every transfer fail.
	mustWrite(t, filepath.Join(cfg.ResourceRoot, DefaultCollection))

	d, err := New(cfg, Deps{Renderer: &fakeRenderer{}})
	if err != nil {
		t.Fatal(err)
	}

	report := d.RunSwitches(context.Background(), []Item{
		{DisplayName: "a", Locator: "layers/a"},
		{DisplayName: "b", Locator: "layers/b"},
	})
	if got := report.Summary; got != (Summary{Total: 2, Skipped: 2}) {
		t.Errorf("Summary = %+v, want two skipped", got)
	}
	for _, res := range report.Results {
		var copyErr *transfer.CopyError
		if !errors.As(res.Err, &copyErr) {
			t.Errorf("item %q error = %v, want *transfer.CopyError", res.Item.DisplayName, res.Err)
			continue
		}
		if copyErr.Stage != transfer.StageRaw {
			t.Errorf("Stage = %s, want raw", copyErr.Stage)
		}
	}
}

func TestRunSwitches_ReuseMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.SwitchMode = media.ModeReuse
	renderer := &fakeRenderer{}
	d, err := New(cfg, Deps{Renderer: renderer})
	if err != nil {
		t.Fatal(err)
	}

	items := []Item{{DisplayName: "Mouth", Locator: "layers/mouth"}}
	first := d.RunSwitches(context.Background(), items)
	second := d.RunSwitches(context.Background(), items)

	if first.Summary.Built != 1 || second.Summary.Cached != 1 {
		t.Errorf("summaries = %+v then %+v", first.Summary, second.Summary)
	}
	if first.Results[0].Path != second.Results[0].Path {
		t.Errorf("reuse mode paths differ: %q vs %q", first.Results[0].Path, second.Results[0].Path)
	}
	if len(renderer.sizes) != 1 {
		t.Errorf("rendered %d times, want 1", len(renderer.sizes))
	}
}

func TestRun_CanceledContext(t *testing.T) {
	renderer := &fakeRenderer{}
	d, err := New(testConfig(t), Deps{Renderer: renderer})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := d.RunSwitches(ctx, []Item{{DisplayName: "a", Locator: "layers/a"}})
	if report.Summary.Skipped != 1 || !errors.Is(report.Results[0].Err, context.Canceled) {
		t.Errorf("report = %+v", report)
	}
	if len(renderer.sizes) != 0 {
		t.Error("renderer called after cancellation")
	}
}
