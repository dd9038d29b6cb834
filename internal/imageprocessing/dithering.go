package imageprocessing

import (
	"image"

	"github.com/makeworld-the-better-one/dither/v2"
)

// DitherFloydSteinberg quantizes an image to the panel's grayscale palette
// with Floyd-Steinberg error diffusion.
func DitherFloydSteinberg(img image.Image, bitDepth int) *image.Paletted {
	if img == nil {
		return nil
	}

	palette := GrayscalePalette(bitDepth)
	ditherer := dither.NewDitherer(palette)
	ditherer.Matrix = dither.FloydSteinberg

	return ditherer.DitherPaletted(img)
}
