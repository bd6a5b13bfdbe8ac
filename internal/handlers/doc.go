// Package handlers serves a cache root over HTTP.
//
// Routes:
//   - GET /thumbnails/{collection}/{key}: the cache entry for a
//     cache-relative path, as returned by the batch commands
//   - GET /api/entries: every cache-relative path in the collection
//   - GET /health, /healthz, /version
//   - GET /metrics when metrics are enabled
//
// Entries are looked up through the cache index, the same way the batch
// pipeline checks for them.
package handlers
