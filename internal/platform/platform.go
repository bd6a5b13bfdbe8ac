// Package platform canonicalizes path separators and detects which
// path convention the host process runs under.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Convention is a path separator convention.
type Convention int

const (
	// Posix uses forward slashes.
	Posix Convention = iota
	// Windows uses backslashes.
	Windows
)

// String returns the lowercase name of the convention.
func (c Convention) String() string {
	if c == Windows {
		return "windows"
	}
	return "posix"
}

// ParseConvention accepts "windows" or "posix" (case-insensitive).
func ParseConvention(name string) (Convention, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows":
		return Windows, true
	case "posix", "unix", "linux", "darwin":
		return Posix, true
	}
	return Posix, false
}

// Normalize rewrites every separator in path to the target convention.
func Normalize(path string, target Convention) string {
	if path == "" {
		return ""
	}
	if target == Windows {
		return strings.ReplaceAll(path, "/", `\`)
	}
	return strings.ReplaceAll(path, `\`, "/")
}

// lookupEnv is swapped in tests.
var lookupEnv = os.LookupEnv

// Detect reports the host convention. The OS environment variable is set to
// Windows_NT by every Windows shell; runtime.GOOS covers processes started
// with a scrubbed environment.
func Detect() Convention {
	if value, ok := lookupEnv("OS"); ok {
		if strings.EqualFold(value, "Windows_NT") {
			return Windows
		}
		return Posix
	}
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Posix
}

// StagingDir returns the ASCII-safe system temp directory used for staging
// files: TEMP when set, otherwise os.TempDir.
func StagingDir() string {
	if value, ok := lookupEnv("TEMP"); ok && value != "" {
		return value
	}
	return os.TempDir()
}
