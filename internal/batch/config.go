package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"thumbcache/internal/filesystem"
	"thumbcache/internal/media"
	"thumbcache/internal/platform"
)

// DefaultCollection is the cache folder name under the resource root.
const DefaultCollection = "BHS_SYN_CHset"

// ErrNoCacheRoot is matched by ConfigErrors for a missing or unwritable
// resource root.
var ErrNoCacheRoot = errors.New("no writable cache root configured")

// ConfigError aborts a batch before any item is processed.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid batch config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config is everything a batch run depends on. It is passed explicitly; the
// driver keeps no package-level state.
type Config struct {
	// ResourceRoot must exist and be writable. The cache root,
	// ResourceRoot/Collection, is created by the first transfer.
	ResourceRoot string
	Collection   string
	StagingDir   string
	Platform     platform.Convention

	SwitchMode media.Mode
	// Size is used for items that do not carry their own.
	Size media.SizeClass

	Interpreter       string
	MirrorTool        string
	PreviewSubfolders []string
	Retry             filesystem.RetryConfig
}

// CacheDir returns the absolute cache root.
func (c Config) CacheDir() string {
	return filepath.Join(c.ResourceRoot, c.Collection)
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.StagingDir == "" {
		c.StagingDir = platform.StagingDir()
	}
	if c.Size == 0 {
		c.Size = media.SizeLarge
	}
	if c.PreviewSubfolders == nil {
		c.PreviewSubfolders = media.DefaultPreviewSubfolders
	}
	if c.Retry.MaxRetries == 0 && c.Retry.InitialBackoff == 0 {
		c.Retry = filesystem.DefaultRetryConfig()
	}
	return c
}

// collectionName matches folder names that are safe as the prefix of every
// returned cache-relative path and inside generated copy scripts.
var collectionName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// validate reports the first ConfigFault in c.
func (c Config) validate() error {
	if strings.TrimSpace(c.ResourceRoot) == "" {
		return &ConfigError{Field: "ResourceRoot", Err: ErrNoCacheRoot}
	}
	if strings.ContainsAny(c.Collection, `/\`) || c.Collection == "." || c.Collection == ".." {
		return &ConfigError{Field: "Collection", Err: fmt.Errorf("%q must be a single folder name", c.Collection)}
	}
	if !collectionName.MatchString(c.Collection) {
		return &ConfigError{Field: "Collection", Err: fmt.Errorf("%q must use only ASCII letters, digits, '_', '-' and '.'", c.Collection)}
	}
	if c.Size < 0 {
		return &ConfigError{Field: "Size", Err: fmt.Errorf("negative size %d", int(c.Size))}
	}

	info, err := os.Stat(c.ResourceRoot)
	if err != nil {
		return &ConfigError{Field: "ResourceRoot", Err: fmt.Errorf("%w: %w", ErrNoCacheRoot, err)}
	}
	if !info.IsDir() {
		return &ConfigError{Field: "ResourceRoot", Err: fmt.Errorf("%w: %s is not a directory", ErrNoCacheRoot, c.ResourceRoot)}
	}
	if err := testWriteAccess(c.ResourceRoot); err != nil {
		return &ConfigError{Field: "ResourceRoot", Err: fmt.Errorf("%w: %w", ErrNoCacheRoot, err)}
	}
	return nil
}

// testWriteAccess verifies that dir accepts new files.
func testWriteAccess(dir string) error {
	f, err := os.CreateTemp(dir, ".thumbcache_write_test_*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
