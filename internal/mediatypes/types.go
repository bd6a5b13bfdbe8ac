package mediatypes

import (
	"path/filepath"
	"strings"
)

// CacheExtensions is the fixed set of formats a cache entry may use. The
// order is the order preview sources are probed in.
var CacheExtensions = []string{".png", ".jpg", ".jpeg"}

// ImageExtensions maps file extensions to whether they are recognised image
// formats. Anything here may be picked up from a preview subfolder or fed to
// the renderer; only CacheExtensions are copied into a cache root.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
}

// MimeTypes maps image extensions to their MIME types.
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

// Ext returns the lowercase extension of name, including the leading dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsImage reports whether name has a recognised image extension.
func IsImage(name string) bool {
	return ImageExtensions[Ext(name)]
}

// IsCacheable reports whether name has one of CacheExtensions.
func IsCacheable(name string) bool {
	ext := Ext(name)
	for _, e := range CacheExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// TrimExt strips the final extension from name.
func TrimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// GetMimeType returns the MIME type for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".jpg").
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
