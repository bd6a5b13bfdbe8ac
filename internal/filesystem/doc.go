/*
Package filesystem provides the Unicode-safe directory listing and resilient
file operations the cache pipeline is built on.

# Existence by enumeration

Virtual and cloud-backed drives are known to answer "does this file exist?"
incorrectly when asked by opening the file. Everything in thumbcache that
needs to know whether a cache entry exists asks a Lister for the directory
contents instead and compares names with SameName, which folds case and
Unicode normalization form:

	lister := filesystem.NewDirLister()
	entries, err := lister.List(cacheRoot)

# Retry Behavior

Stat, Open, ReadDir, ReadFile and WriteFile have *WithRetry variants that
retry stale file handle errors (ESTALE) with exponential backoff:
  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

All other errors fail immediately.

# Metrics

Operations report to an Observer installed with SetObserver; the metrics
package provides the Prometheus implementation. Paths are labelled by
volume through a VolumeResolver ("cache", "staging", "unknown").
*/
package filesystem
