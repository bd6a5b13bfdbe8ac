// Package manifest reads the list of switch layers to render from a TOML
// file:
//
//	size = "large"
//
//	[[item]]
//	name = "目パチ"
//	layer = "layers/eyes/blink.png"
//
//	[[item]]
//	name = "Mouth A"
//	layer = "layers/mouth/a.png"
//	size = "small"
//
// Relative layer paths are resolved against the manifest's directory.
package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"thumbcache/internal/filesystem"
	"thumbcache/internal/media"
	"thumbcache/internal/mediatypes"

	"github.com/pelletier/go-toml/v2"
)

// Manifest is a decoded switch manifest.
type Manifest struct {
	// Size applies to entries without their own size. Empty means the
	// batch default.
	Size    string  `toml:"size"`
	Entries []Entry `toml:"item"`
}

// Entry is one switch layer.
type Entry struct {
	Name  string `toml:"name"`
	Layer string `toml:"layer"`
	Size  string `toml:"size"`
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := filesystem.ReadFileWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest. Unknown keys are rejected so that typos do not
// silently drop settings.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Items converts the entries into batch items. Entries without a name are
// named after their layer file. Sizes are validated here so a bad manifest
// fails before any rendering starts.
func (m *Manifest) Items(baseDir string) ([]media.Item, error) {
	var defaultSize media.SizeClass
	if strings.TrimSpace(m.Size) != "" {
		size, err := media.ParseSizeClass(m.Size)
		if err != nil {
			return nil, err
		}
		defaultSize = size
	}

	items := make([]media.Item, 0, len(m.Entries))
	for i, e := range m.Entries {
		if strings.TrimSpace(e.Layer) == "" {
			return nil, fmt.Errorf("item %d (%q): layer is required", i+1, e.Name)
		}

		layer := e.Layer
		if !filepath.IsAbs(layer) {
			layer = filepath.Join(baseDir, filepath.FromSlash(layer))
		}

		name := e.Name
		if name == "" {
			name = mediatypes.TrimExt(filepath.Base(layer))
		}

		size := defaultSize
		if strings.TrimSpace(e.Size) != "" {
			parsed, err := media.ParseSizeClass(e.Size)
			if err != nil {
				return nil, fmt.Errorf("item %d (%q): %w", i+1, name, err)
			}
			size = parsed
		}

		items = append(items, media.Item{DisplayName: name, Locator: layer, Size: size})
	}
	return items, nil
}
