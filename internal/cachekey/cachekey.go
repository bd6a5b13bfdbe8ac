// Package cachekey derives the ASCII-only identifiers that name entries in a
// thumbnail cache root.
//
// A key is a human-readable slug of the display name followed by a short hash
// of the source location, so two items that share a name but live in
// different places never share a cache entry:
//
//	Derive("Preset A", "/chars/a/Preset A") // "preset_a_" + 8 hex digits
//
// Keys only ever contain [a-z0-9_]. They are safe as a path component on any
// target filesystem and may be embedded unescaped in single-quoted shell or
// PowerShell strings.
package cachekey

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Placeholder replaces a slug that is empty after stripping punctuation.
const Placeholder = "item"

// SuffixLength is the length of the random suffix minted per render.
const SuffixLength = 10

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var validKey = regexp.MustCompile(`^[a-z0-9_]+$`)

// Slug lower-cases name, collapses every run of characters outside [a-z0-9]
// into a single underscore and trims underscores at both ends.
func Slug(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	pendingSep := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	if b.Len() == 0 {
		return Placeholder
	}
	return b.String()
}

// Hash returns the 8 hex digit hash of contextLocator followed by displayName.
func Hash(displayName, contextLocator string) string {
	sum := xxhash.Sum64String(contextLocator + displayName)
	return fmt.Sprintf("%08x", uint32(sum))
}

// Derive returns the cache key for an item.
func Derive(displayName, contextLocator string) string {
	return Slug(displayName) + "_" + Hash(displayName, contextLocator)
}

// Context folds a size tag into a locator so that renders of the same layer
// at different sizes get different keys. An empty tag leaves the locator
// untouched.
func Context(locator, sizeTag string) string {
	if sizeTag == "" {
		return locator
	}
	return locator + "#" + sizeTag
}

// Valid reports whether key only contains characters Derive can produce.
func Valid(key string) bool {
	return validKey.MatchString(key)
}

// RandomSuffix mints a SuffixLength character [a-z0-9] string from the
// entropy of a random UUID.
func RandomSuffix() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate random suffix: %w", err)
	}

	// Bytes 6 and 8 carry the version and variant bits.
	entropy := make([]byte, 0, SuffixLength)
	for i, v := range id {
		if i == 6 || i == 8 {
			continue
		}
		entropy = append(entropy, v)
		if len(entropy) == SuffixLength {
			break
		}
	}

	out := make([]byte, SuffixLength)
	for i, v := range entropy {
		out[i] = suffixAlphabet[int(v)%len(suffixAlphabet)]
	}
	return string(out), nil
}
