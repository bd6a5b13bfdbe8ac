package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"thumbcache/internal/logging"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP layer exports
)

const (
	// MaxImageDimension is the maximum width or height decoded at full size.
	// Larger sources are downscaled first.
	MaxImageDimension = 4096

	// MaxImagePixels caps the decoded pixel count (~20MP, ~80MB in RGBA).
	MaxImagePixels = 20_000_000
)

// Renderer draws the layer identified by locator into a square of size
// pixels and writes it to target. Callers confirm the result by checking
// that target exists; an implementation may fail without returning an error.
type Renderer interface {
	Render(ctx context.Context, locator string, size int, target string) error
}

// ErrDecodeBudget is returned for sources whose decoded size would exceed
// ImageRenderer.MaxDecodePixels.
var ErrDecodeBudget = errors.New("image exceeds decode budget")

// ImageRenderer renders layers that are exported as image files: the locator
// is the image path, and the output is the image fitted into size x size.
//
// MaxDimension and MaxPixels bound the image kept after decoding. Decoding
// itself allocates the full source, so MaxDecodePixels, when positive,
// refuses sources larger than that before any pixel is read.
type ImageRenderer struct {
	MaxDimension    int
	MaxPixels       int
	MaxDecodePixels int
}

// NewImageRenderer returns an ImageRenderer with the default decode limits.
func NewImageRenderer() *ImageRenderer {
	return &ImageRenderer{
		MaxDimension: MaxImageDimension,
		MaxPixels:    MaxImagePixels,
	}
}

// Render decodes locator, fits it into size x size and encodes it to target
// in the format implied by target's extension.
func (r *ImageRenderer) Render(ctx context.Context, locator string, size int, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("invalid render size %d", size)
	}

	if r.MaxDecodePixels > 0 {
		dims, err := GetImageDimensions(locator)
		if err != nil {
			return fmt.Errorf("failed to read dimensions of %s: %w", locator, err)
		}
		if dims.Width*dims.Height > r.MaxDecodePixels {
			return fmt.Errorf("%w: %s is %dx%d, budget %d pixels",
				ErrDecodeBudget, locator, dims.Width, dims.Height, r.MaxDecodePixels)
		}
	}

	img, err := LoadImageConstrained(locator, r.MaxDimension, r.MaxPixels)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", locator, err)
	}

	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	if err := imaging.Save(thumb, target); err != nil {
		return fmt.Errorf("failed to encode %s: %w", target, err)
	}

	logging.Debug("Rendered %s (%dx%d) to %s", locator, thumb.Bounds().Dx(), thumb.Bounds().Dy(), target)
	return nil
}

// LoadImageConstrained loads an image, downscaling if it exceeds size limits
// This prevents OOM when a layer export is unexpectedly large
func LoadImageConstrained(path string, maxDimension, maxPixels int) (image.Image, error) {
	dimensions, err := GetImageDimensions(path)
	if err != nil {
		logging.Debug("Could not get image dimensions for %s: %v, loading unconstrained", path, err)
		return imaging.Open(path, imaging.AutoOrientation(true))
	}

	width, height := dimensions.Width, dimensions.Height
	if width <= maxDimension && height <= maxDimension && width*height <= maxPixels {
		return imaging.Open(path, imaging.AutoOrientation(true))
	}

	targetWidth, targetHeight := width, height

	if width > maxDimension || height > maxDimension {
		if width > height {
			targetWidth = maxDimension
			targetHeight = height * maxDimension / width
		} else {
			targetHeight = maxDimension
			targetWidth = width * maxDimension / height
		}
	}

	if targetPixels := targetWidth * targetHeight; targetPixels > maxPixels {
		scale := float64(maxPixels) / float64(targetPixels)
		targetWidth = int(float64(targetWidth) * scale)
		targetHeight = int(float64(targetHeight) * scale)
	}

	logging.Info("Constraining large image %s from %dx%d to %dx%d", path, width, height, targetWidth, targetHeight)

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	return imaging.Resize(img, targetWidth, targetHeight, imaging.Lanczos), nil
}

// ImageDimensions holds image width and height
type ImageDimensions struct {
	Width  int
	Height int
}

// GetImageDimensions returns image dimensions without fully decoding the image
func GetImageDimensions(path string) (*ImageDimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, err
	}

	return &ImageDimensions{
		Width:  config.Width,
		Height: config.Height,
	}, nil
}
