package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry is one name returned by a directory enumeration.
type Entry struct {
	Name  string
	IsDir bool
}

// Lister enumerates a directory. Implementations must handle non-ASCII
// paths correctly; callers use the listing, never a trial open, to decide
// whether a file exists.
type Lister interface {
	List(dir string) ([]Entry, error)
}

// DirLister lists directories through os.ReadDir with stale-handle retries.
type DirLister struct {
	Retry RetryConfig
}

// NewDirLister returns a DirLister using DefaultRetryConfig.
func NewDirLister() *DirLister {
	return &DirLister{Retry: DefaultRetryConfig()}
}

// List returns the entries of dir in enumeration order. Symlinks to
// directories are reported as directories.
func (l *DirLister) List(dir string) ([]Entry, error) {
	dirEntries, err := ReadDirWithRetry(dir, l.Retry)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{Name: e.Name(), IsDir: isDir})
	}
	return entries, nil
}

// FoldName returns the comparison form of a filename: NFC-normalized and
// lower-cased. Some volumes hand back decomposed (NFD) names, so two
// spellings of the same name only compare equal after normalization.
func FoldName(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

// SameName reports whether a and b name the same file under
// case-insensitive, normalization-insensitive comparison.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
