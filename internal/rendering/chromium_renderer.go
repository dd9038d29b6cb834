package rendering

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/inkframe/inkframe/internal/capture"
)

// ChromiumHTMLRenderer renders documents by writing them to a transient
// file and pointing the capture pipeline at the file:// URL.
type ChromiumHTMLRenderer struct {
	invoker capture.Invoker
}

// NewChromiumHTMLRenderer creates a renderer on top of the given capture
// invoker.
func NewChromiumHTMLRenderer(invoker capture.Invoker) *ChromiumHTMLRenderer {
	return &ChromiumHTMLRenderer{invoker: invoker}
}

func (r *ChromiumHTMLRenderer) RenderHTML(ctx context.Context, html string, width, height int, opts RenderOptions) (image.Image, error) {
	docPath := filepath.Join(os.TempDir(), fmt.Sprintf("page_%s.html", uuid.NewString()))
	if err := os.WriteFile(docPath, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write transient document: %w", err)
	}
	defer os.Remove(docPath)

	capWidth, capHeight := capture.PlanViewport(width, height, opts.DeviceScale, true)
	return r.invoker.Capture(ctx, capture.Request{
		URL:         "file://" + docPath,
		Width:       capWidth,
		Height:      capHeight,
		DeviceScale: opts.DeviceScale,
		FullPage:    opts.FullPage,
	})
}

func (r *ChromiumHTMLRenderer) Close() error {
	return nil
}
