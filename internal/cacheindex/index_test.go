package cacheindex

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thumbcache/internal/filesystem"
)

// fakeLister returns a fixed listing per directory.
type fakeLister struct {
	dirs  map[string][]filesystem.Entry
	err   error
	calls int
}

func (f *fakeLister) List(dir string) ([]filesystem.Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	entries, ok := f.dirs[dir]
	if !ok {
		return nil, os.ErrNotExist
	}
	return entries, nil
}

func files(names ...string) []filesystem.Entry {
	entries := make([]filesystem.Entry, 0, len(names))
	for _, n := range names {
		entries = append(entries, filesystem.Entry{Name: n})
	}
	return entries
}

func TestLookup(t *testing.T) {
	lister := &fakeLister{dirs: map[string][]filesystem.Entry{
		"/cache": append(files(
			"eye_0011aabb.png",
			"MOUTH_22334455.JPG",
			"eye_0011aabb_extra.png",
			"brow_99887766",
		), filesystem.Entry{Name: "nose_12345678.png", IsDir: true}),
	}}
	idx := New(lister)

	tests := []struct {
		name     string
		key      string
		wantName string
		wantHit  bool
	}{
		{"exact prefix", "eye_0011aabb", "eye_0011aabb.png", true},
		{"case insensitive", "mouth_22334455", "MOUTH_22334455.JPG", true},
		{"no dot after key", "brow_99887766", "", false},
		{"longer name does not match shorter key", "eye_0011", "", false},
		{"directories ignored", "nose_12345678", "", false},
		{"absent", "ear_00000000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := idx.Lookup("/cache", tt.key)
			if got != tt.wantName || hit != tt.wantHit {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.key, got, hit, tt.wantName, tt.wantHit)
			}
		})
	}
}

func TestLookup_FirstMatchWins(t *testing.T) {
	idx := New(&fakeLister{dirs: map[string][]filesystem.Entry{
		"/cache": files("eye_0011aabb.jpg", "eye_0011aabb.png"),
	}})

	got, hit := idx.Lookup("/cache", "eye_0011aabb")
	if !hit || got != "eye_0011aabb.jpg" {
		t.Errorf("Lookup() = (%q, %v), want first enumerated entry", got, hit)
	}
}

// Lookup hits iff some enumerated name, lower-cased, starts with key + ".".
func TestLookup_MatchesPrefixRule(t *testing.T) {
	names := []string{"a_1.png", "A_2.JPEG", "b_3", "c_4.x.png", "a_1x.png"}
	idx := New(&fakeLister{dirs: map[string][]filesystem.Entry{"/c": files(names...)}})

	for _, key := range []string{"a_1", "a_2", "b_3", "c_4", "c_4.x", "a_1x", "a", "zz"} {
		want := false
		for _, n := range names {
			if strings.HasPrefix(strings.ToLower(n), key+".") {
				want = true
				break
			}
		}
		if _, hit := idx.Lookup("/c", key); hit != want {
			t.Errorf("Lookup(%q) hit = %v, want %v", key, hit, want)
		}
	}
}

func TestLookup_ListingFaultIsMiss(t *testing.T) {
	idx := New(&fakeLister{err: errors.New("device not ready")})
	if _, hit := idx.Lookup("/cache", "eye_0011aabb"); hit {
		t.Error("Lookup() hit on failing listing")
	}
	if idx.Exists("/cache", "eye_0011aabb.png") {
		t.Error("Exists() true on failing listing")
	}
	if entries := idx.Entries("/cache"); len(entries) != 0 {
		t.Errorf("Entries() = %v, want empty", entries)
	}
}

func TestExists(t *testing.T) {
	idx := New(&fakeLister{dirs: map[string][]filesystem.Entry{
		"/cache": files("eye_0011aabb.png", "caf\u00e9_11111111.png"),
	}})

	tests := []struct {
		name string
		file string
		want bool
	}{
		{"exact", "eye_0011aabb.png", true},
		{"case", "EYE_0011AABB.PNG", true},
		{"normalization", "cafe\u0301_11111111.png", true},
		{"other extension", "eye_0011aabb.jpg", false},
		{"empty name", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Exists("/cache", tt.file); got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}

	if idx.Exists("/elsewhere", "eye_0011aabb.png") {
		t.Error("Exists() true for missing directory")
	}
}

func TestIndex_RealDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "preset_a_0a0b0c0d.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	idx := New(nil)
	if name, hit := idx.Lookup(dir, "preset_a_0a0b0c0d"); !hit || name != "preset_a_0a0b0c0d.png" {
		t.Errorf("Lookup() = (%q, %v)", name, hit)
	}
	if got := idx.Entries(dir); len(got) != 1 {
		t.Errorf("Entries() = %v, want one file", got)
	}
	if idx.Exists(filepath.Join(dir, "missing"), "x.png") {
		t.Error("Exists() true under missing directory")
	}
}
