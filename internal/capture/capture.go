package capture

import (
	"context"
	"image"
)

// Request describes a single screenshot invocation. Width and Height are
// the capture viewport, not the final output size; the post-processor
// reconciles the two.
type Request struct {
	URL    string
	Width  int
	Height int

	// DeviceScale, when positive, is passed to the browser as a device
	// scale factor instead of being realised through viewport arithmetic.
	DeviceScale float64

	// FullPage requests the entire scrollable page rather than a single
	// viewport-sized frame.
	FullPage bool
}

// Invoker runs an external browser process and returns the captured frame.
// The pipeline only depends on this interface so it can be exercised
// against fakes without spawning a browser.
type Invoker interface {
	Capture(ctx context.Context, req Request) (image.Image, error)
}
