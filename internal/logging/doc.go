// Package logging provides the leveled logger used across thumbcache.
//
// It supports the following log levels:
//   - DEBUG: per-item pipeline decisions (cache hits, strategy attempts)
//   - INFO: batch progress and summaries
//   - WARN: skipped items (render and copy faults)
//   - ERROR: configuration faults
//
// The log level is configured via the LOG_LEVEL or DEBUG environment
// variables, or overridden at runtime with SetLevel.
package logging
