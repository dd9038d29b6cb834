package urlrenderer

import (
	"fmt"
	"image"

	"github.com/inkframe/inkframe/internal/capture"
	"github.com/inkframe/inkframe/internal/device"
	"github.com/inkframe/inkframe/internal/logging"
	"github.com/inkframe/inkframe/internal/plugins"
	"github.com/inkframe/inkframe/internal/utils"
)

// Default zoom shows the page at 50%, which fits roughly a phone
// screen's worth of content onto a small panel.
const defaultZoom = 0.5

// URLRenderer captures a literal screenshot of a web page at a fixed zoom
// and fits it to the panel.
type URLRenderer struct {
	invoker capture.Invoker
}

// New creates a URL renderer on top of the given capture invoker.
func New(invoker capture.Invoker) *URLRenderer {
	return &URLRenderer{invoker: invoker}
}

func (p *URLRenderer) Type() string {
	return "url_renderer"
}

func (p *URLRenderer) Name() string {
	return "URL Renderer"
}

func (p *URLRenderer) Description() string {
	return "Renders any web page as a static screenshot sized for the display"
}

func (p *URLRenderer) Version() string {
	return "1.0.0"
}

func (p *URLRenderer) ConfigSchema() string {
	return `{
		"type": "object",
		"properties": {
			"url": {
				"type": "string",
				"title": "Website URL",
				"description": "The URL of the page to render",
				"examples": ["https://example.com", "news.ycombinator.com"]
			},
			"zoomLevel": {
				"type": "string",
				"title": "Zoom Level",
				"description": "Page zoom factor; values below 1.0 fit more content onto the display",
				"default": "0.5"
			}
		},
		"required": ["url"]
	}`
}

// Validate validates the plugin settings
func (p *URLRenderer) Validate(settings map[string]string) error {
	ctx := plugins.PluginContext{Settings: settings}

	normalized, err := utils.NormalizeURL(ctx.GetStringSetting("url", ""))
	if err != nil {
		return err
	}
	if err := utils.ValidateURL(normalized); err != nil {
		return fmt.Errorf("url validation failed: %w", err)
	}

	zoom, err := ctx.ParseFloatSetting("zoomLevel", defaultZoom)
	if err != nil {
		return err
	}
	if zoom <= 0 {
		return fmt.Errorf("zoom level must be positive, got %g", zoom)
	}
	return nil
}

// GenerateImage captures the configured page and returns it at exactly
// the display's dimensions.
func (p *URLRenderer) GenerateImage(ctx plugins.PluginContext) (image.Image, error) {
	pageURL, err := utils.NormalizeURL(ctx.GetStringSetting("url", ""))
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateURL(pageURL); err != nil {
		return nil, fmt.Errorf("url validation failed: %w", err)
	}

	zoom, err := ctx.ParseFloatSetting("zoomLevel", defaultZoom)
	if err != nil {
		return nil, err
	}
	if zoom <= 0 {
		return nil, fmt.Errorf("zoom level must be positive, got %g", zoom)
	}

	geom := device.ResolveGeometry(ctx.Device)
	capWidth, capHeight := capture.PlanViewport(geom.Width, geom.Height, zoom, false)

	img, err := p.invoker.Capture(ctx.Context, capture.Request{
		URL:    pageURL,
		Width:  capWidth,
		Height: capHeight,
	})
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentRenderer, "Failed to capture screenshot",
			"plugin", p.Type(), "url", pageURL, "error", err)
		return nil, fmt.Errorf("screenshot generation failed: %v", err)
	}

	return capture.PostProcess(img, geom.Width, geom.Height, zoom, false), nil
}

// Register the plugin when this package is imported
func init() {
	plugins.Register(New(capture.NewChromiumInvoker()))
}
