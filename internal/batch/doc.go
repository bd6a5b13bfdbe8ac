// Package batch drives the cache pipeline over a list of items.
//
// A Driver is built from an explicit Config; a missing or unwritable
// resource root is reported by New as a ConfigError before any item runs.
// After that, faults are per item: a skipped item is recorded in the Report
// and the batch moves on.
package batch
