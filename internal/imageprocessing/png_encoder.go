package imageprocessing

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
)

// EncodePackedGrayPNG encodes a paletted grayscale image as a PNG with
// color type 0 (grayscale) at the given bit depth, packing multiple pixels
// per byte. The standard library always widens palettes to 8-bit indexed
// output, which e-ink firmware rejects for 1- and 2-bit panels.
func EncodePackedGrayPNG(img *image.Paletted, bitDepth int) ([]byte, error) {
	if bitDepth != 1 && bitDepth != 2 && bitDepth != 4 {
		return nil, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	raw, err := packGrayRows(img, bitDepth)
	if err != nil {
		return nil, err
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to compress image data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress image data: %w", err)
	}

	var ihdr bytes.Buffer
	binary.Write(&ihdr, binary.BigEndian, uint32(width))
	binary.Write(&ihdr, binary.BigEndian, uint32(height))
	// Bit depth, color type 0 (grayscale), compression, filter, interlace.
	ihdr.Write([]byte{uint8(bitDepth), 0, 0, 0, 0})

	var out bytes.Buffer
	out.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	writeChunk(&out, "IHDR", ihdr.Bytes())
	writeChunk(&out, "IDAT", compressed.Bytes())
	writeChunk(&out, "IEND", nil)

	return out.Bytes(), nil
}

// packGrayRows converts palette indices to grayscale sample values and
// packs them at the target bit depth, one filter byte (None) per row.
func packGrayRows(img *image.Paletted, bitDepth int) ([]byte, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	pixelsPerByte := 8 / bitDepth
	rowBytes := (width + pixelsPerByte - 1) / pixelsPerByte
	maxSample := uint32(1<<bitDepth - 1)

	out := make([]byte, 0, height*(rowBytes+1))
	for y := 0; y < height; y++ {
		out = append(out, 0) // filter type None
		row := make([]byte, rowBytes)
		for x := 0; x < width; x++ {
			idx := img.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)
			if int(idx) >= len(img.Palette) {
				return nil, fmt.Errorf("palette index %d out of range", idx)
			}
			gray := color.GrayModel.Convert(img.Palette[idx]).(color.Gray).Y
			sample := uint32(gray) * maxSample / 255

			shift := uint((pixelsPerByte - 1 - x%pixelsPerByte) * bitDepth)
			row[x/pixelsPerByte] |= byte(sample << shift)
		}
		out = append(out, row...)
	}
	return out, nil
}

func writeChunk(buf *bytes.Buffer, chunkType string, data []byte) {
	binary.Write(buf, binary.BigEndian, uint32(len(data)))

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)

	buf.WriteString(chunkType)
	buf.Write(data)
	binary.Write(buf, binary.BigEndian, crc.Sum32())
}
