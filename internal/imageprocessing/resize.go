package imageprocessing

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ScaleToExact resizes an image to exactly targetWidth x targetHeight.
// Catmull-Rom resampling keeps shrunk page captures legible; cheaper
// kernels alias badly on text-heavy content.
func ScaleToExact(img image.Image, targetWidth, targetHeight int) image.Image {
	if img == nil {
		return nil
	}

	bounds := img.Bounds()
	if bounds.Dx() == targetWidth && bounds.Dy() == targetHeight {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// ScaleToFit scales an image by a single factor so it fits within
// targetWidth x targetHeight with its aspect ratio preserved. The result
// may be smaller than the box in one dimension; callers must not assume
// an exact fill.
func ScaleToFit(img image.Image, targetWidth, targetHeight int) image.Image {
	if img == nil {
		return nil
	}

	bounds := img.Bounds()
	newWidth, newHeight := FitDimensions(bounds.Dx(), bounds.Dy(), targetWidth, targetHeight)
	if newWidth == bounds.Dx() && newHeight == bounds.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// FitDimensions returns the largest dimensions preserving srcWidth:srcHeight
// that fit within targetWidth x targetHeight.
func FitDimensions(srcWidth, srcHeight, targetWidth, targetHeight int) (int, int) {
	scale := math.Min(
		float64(targetWidth)/float64(srcWidth),
		float64(targetHeight)/float64(srcHeight),
	)
	return int(float64(srcWidth) * scale), int(float64(srcHeight) * scale)
}
