package capture

import (
	"image"

	"github.com/inkframe/inkframe/internal/imageprocessing"
)

// PostProcess reconciles a captured frame with the display's target
// dimensions.
//
// Full-page captures are scaled by a single factor so they fit within the
// target box with their aspect ratio intact; the result may be smaller
// than the box in one dimension and is never stretched. Fixed-viewport
// captures taken at zoom 1.0 pass through untouched; any other zoom means
// the viewport was inversely scaled, so the frame is resized to exactly
// the target dimensions.
func PostProcess(img image.Image, targetWidth, targetHeight int, zoom float64, fullPage bool) image.Image {
	if fullPage {
		return imageprocessing.ScaleToFit(img, targetWidth, targetHeight)
	}
	if zoom == 1.0 {
		return img
	}
	return imageprocessing.ScaleToExact(img, targetWidth, targetHeight)
}
