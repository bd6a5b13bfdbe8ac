// Package media produces cache entries for previewable items.
//
// Two producers share the cache root:
//   - Builder renders a layer into the staging directory and transfers the
//     result into the cache (switch thumbnails).
//   - Resolver finds an existing preview image inside an item's folder and
//     transfers it under a deterministic key (character previews).
//
// Both return a cache-relative path without extension, suitable for an
// image widget, or nothing when the item has no preview.
package media
