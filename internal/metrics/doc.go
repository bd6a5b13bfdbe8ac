// Package metrics provides Prometheus instrumentation for thumbcache.
//
// All metrics are prefixed with "thumbcache_".
//
// # Cache Index
//   - CacheLookupsTotal: key lookups by result (hit/miss)
//   - CacheLookupFaults: failed enumerations treated as an empty directory
//   - CacheEntries: entries per collection, refreshed by Collector
//
// # Staged Transfer
//   - TransferAttemptsTotal: strategy attempts by stage and verified result
//   - TransferDuration: per-attempt duration by stage
//   - TransfersTotal: transfer calls by outcome
//
// # Thumbnail Builder
//   - RendersTotal, RenderDuration
//
// # Batch Driver
//   - BatchItemsTotal: items by kind and outcome
//   - BatchDuration
//
// # HTTP
//   - HTTPRequestsTotal, HTTPRequestDuration: by method and route template
//   - HTTPRequestsInFlight
//
// # Filesystem
//
// Filesystem operation and stale-handle retry metrics are recorded through
// the filesystem.Observer returned by NewFilesystemObserver:
//
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
package metrics
