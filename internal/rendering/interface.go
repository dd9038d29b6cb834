package rendering

import (
	"context"
	"image"
)

// RenderOptions contains options for rendering a document to an image.
type RenderOptions struct {
	// DeviceScale is handed to the browser as a device scale factor;
	// values <= 0 leave the browser at its default of 1.
	DeviceScale float64

	// FullPage captures the entire scrollable document instead of a
	// single viewport-sized frame.
	FullPage bool
}

// HTMLRenderer turns an HTML document into a raster image at the given
// viewport size.
type HTMLRenderer interface {
	RenderHTML(ctx context.Context, html string, width, height int, opts RenderOptions) (image.Image, error)

	// Close releases any resources held by the renderer.
	Close() error
}
