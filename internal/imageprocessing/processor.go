package imageprocessing

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// PrepareForPanel converts a rendered page image into the panel's native
// grayscale space: luminance conversion followed by Floyd-Steinberg
// dithering at the panel bit depth. Bit depths of 8 and above skip
// dithering, since the panel can show the full grayscale range.
func PrepareForPanel(img image.Image, bitDepth int) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if bitDepth < 1 {
		return nil, fmt.Errorf("bit depth must be at least 1, got %d", bitDepth)
	}

	gray := ToGrayscale(img)
	if bitDepth >= 8 {
		return gray, nil
	}
	return DitherFloydSteinberg(gray, bitDepth), nil
}

// EncodePNG serialises an image as PNG. Paletted images at low bit depths
// go through the packed grayscale encoder so the file carries the panel's
// real bit depth; everything else uses the standard encoder at best
// compression.
func EncodePNG(img image.Image, bitDepth int) ([]byte, error) {
	if paletted, ok := img.(*image.Paletted); ok && bitDepth >= 1 && bitDepth <= 4 {
		return EncodePackedGrayPNG(paletted, bitDepth)
	}

	var buf bytes.Buffer
	encoder := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
