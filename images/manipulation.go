package images

import (
	"image"
	"math"

	"github.com/nfnt/resize"
	"github.com/oliamb/cutter"
	"github.com/pkg/errors"
)

// ShrinkToFit computes the dimensions width x height scale down to so that
// the larger axis equals maxSize. Dimensions already within the bound pass
// through unchanged; images are never upscaled. Square inputs take the
// height branch, which yields the same result either way. The non-dominant
// axis is rounded half away from zero.
func ShrinkToFit(width, height, maxSize int) (int, int) {
	switch {
	case width > height && width > maxSize:
		return maxSize, scaleAxis(height, maxSize, width)
	case height >= width && height > maxSize:
		return scaleAxis(width, maxSize, height), maxSize
	default:
		return width, height
	}
}

func scaleAxis(axis, maxSize, dominant int) int {
	return int(math.Round(float64(axis) * float64(maxSize) / float64(dominant)))
}

// Resize scales img to width x height in a single Bilinear pass.
func Resize(width, height int, img image.Image) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear)
}

// CropCenter cuts the largest centered square out of img, for callers that
// need a square variant of a normalized image.
func CropCenter(img image.Image) (image.Image, error) {
	side := img.Bounds().Dx()
	if img.Bounds().Dy() < side {
		side = img.Bounds().Dy()
	}

	cropped, err := cutter.Crop(img, cutter.Config{
		Width:  side,
		Height: side,
		Mode:   cutter.Centered,
	})
	if err != nil {
		return nil, errors.Wrap(err, "crop image")
	}

	return cropped, nil
}
