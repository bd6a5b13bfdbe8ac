// Package main hosts the thumbcache CLI.
//
// The Cobra command tree loads configuration from the environment (and a
// .env file), then runs one of the cache pipelines:
//
//	thumbcache characters <root>      cache a preview for each character folder
//	thumbcache switches <manifest>    render thumbnails for switch layers
//	thumbcache lookup <name> <loc>    show the cache key and entry for an item
//	thumbcache list                   list cache-relative paths in the collection
//	thumbcache serve                  serve the collection over HTTP
//
// Batch commands print one line per item in input order; items without a
// preview print "-" and never fail the run.
package main
