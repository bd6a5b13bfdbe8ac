package media

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeClass is the edge length, in pixels, of a rendered thumbnail.
type SizeClass int

const (
	// SizeSmall is the compact picker size.
	SizeSmall SizeClass = 128
	// SizeLarge is the default picker size.
	SizeLarge SizeClass = 256
)

// Pixels returns the edge length in pixels.
func (s SizeClass) Pixels() int {
	return int(s)
}

// String returns "large", "small" or the pixel count for custom sizes. The
// result participates in cache keys, so it must stay stable.
func (s SizeClass) String() string {
	switch s {
	case SizeLarge:
		return "large"
	case SizeSmall:
		return "small"
	default:
		return strconv.Itoa(int(s)) + "px"
	}
}

// ParseSizeClass accepts "large", "small" or a positive pixel count.
func ParseSizeClass(value string) (SizeClass, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "large", "":
		return SizeLarge, nil
	case "small":
		return SizeSmall, nil
	}

	n, err := strconv.Atoi(strings.TrimSuffix(v, "px"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid thumbnail size %q: want large, small or a positive pixel count", value)
	}
	return SizeClass(n), nil
}

// Item is one previewable thing: a renderable layer for switch thumbnails,
// or a character folder for previews.
type Item struct {
	DisplayName string
	// Locator is the layer reference or folder path. It disambiguates
	// items that share a display name.
	Locator string
	Size    SizeClass
}

// Mode selects how rendered thumbnails are named in the cache.
type Mode int

const (
	// ModeRegenerate renders on every call and stores the result under a
	// fresh <key>_<suffix>.png name. Earlier renders stay in the cache.
	ModeRegenerate Mode = iota
	// ModeReuse stores renders under <key>.png and returns an existing
	// entry without rendering.
	ModeReuse
)

func (m Mode) String() string {
	if m == ModeReuse {
		return "reuse"
	}
	return "regenerate"
}

// ParseMode accepts "regenerate" or "reuse".
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "regenerate", "":
		return ModeRegenerate, nil
	case "reuse":
		return ModeReuse, nil
	}
	return ModeRegenerate, fmt.Errorf("invalid switch mode %q: want regenerate or reuse", value)
}

// Outcome reports how a cache-relative path was obtained.
type Outcome int

const (
	// OutcomeSkipped means no path was produced.
	OutcomeSkipped Outcome = iota
	// OutcomeCached means an existing cache entry was returned.
	OutcomeCached
	// OutcomeBuilt means a new cache entry was written.
	OutcomeBuilt
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCached:
		return "cached"
	case OutcomeBuilt:
		return "built"
	default:
		return "skipped"
	}
}
