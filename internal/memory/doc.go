// Package memory sizes the Go heap from the container memory limit and
// derives how large an image the thumbnail renderer may decode.
//
// Decoding a layer allocates its full pixel buffer before any scaling
// happens, so a single oversized PSD export can exhaust a small container.
// ConfigureFromEnv sets GOMEMLIMIT from MEMORY_LIMIT (scaled by
// MEMORY_RATIO), and PixelBudget turns that limit into the renderer's
// MaxDecodePixels bound, checked against the header dimensions before a
// source is decoded:
//
//	res := memory.ConfigureFromEnv()
//	renderer := media.NewImageRenderer()
//	if res.Configured {
//		renderer.MaxDecodePixels = res.PixelBudget(math.MaxInt)
//	}
package memory
