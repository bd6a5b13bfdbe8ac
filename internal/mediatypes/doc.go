// Package mediatypes holds the image format tables shared by the cache
// pipeline and the thumbnail server.
//
// It has no dependencies beyond the standard library so that every other
// package can import it without creating cycles.
//
//	mediatypes.IsImage("face_preview.PNG")  // true
//	mediatypes.IsCacheable("face.webp")     // false: not copied into a cache root
//	mediatypes.TrimExt("eye_0011aabb.png")  // "eye_0011aabb"
package mediatypes
