package imageprocessing

import (
	"image"
	"image/color"
	"image/draw"
)

// ToGrayscale converts an image to grayscale using the standard luminance
// weights.
func ToGrayscale(img image.Image) *image.Gray {
	if img == nil {
		return nil
	}
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// ToRGBA converts any image to RGBA format for easier processing.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// ColorLevels returns the number of grayscale levels representable at the
// given bit depth.
func ColorLevels(bitDepth int) int {
	if bitDepth < 1 {
		bitDepth = 1
	}
	return 1 << bitDepth
}

// GrayscalePalette builds an evenly spaced grayscale palette for the given
// bit depth.
func GrayscalePalette(bitDepth int) color.Palette {
	levels := ColorLevels(bitDepth)
	palette := make(color.Palette, levels)
	for i := 0; i < levels; i++ {
		palette[i] = color.Gray{Y: uint8((i * 255) / (levels - 1))}
	}
	return palette
}
