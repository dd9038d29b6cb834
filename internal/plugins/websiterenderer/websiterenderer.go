package websiterenderer

import (
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/inkframe/inkframe/internal/capture"
	"github.com/inkframe/inkframe/internal/device"
	"github.com/inkframe/inkframe/internal/htmlrewrite"
	"github.com/inkframe/inkframe/internal/logging"
	"github.com/inkframe/inkframe/internal/plugins"
	"github.com/inkframe/inkframe/internal/rendering"
	"github.com/inkframe/inkframe/internal/utils"
)

const (
	// In this variant the zoom rides on the browser's device scale
	// factor, so 1.0 means no magnification at all.
	defaultZoom = 1.0

	fetchTimeout = 30 * time.Second

	// Same mobile user agent the capture layer presents, so the markup
	// we fetch matches what a screenshot of the page would show.
	fetchUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.0 Mobile/15E148 Safari/604.1"

	// maxFetchBytes caps how much markup a single page may feed the
	// rewriter.
	maxFetchBytes = 8 << 20
)

// WebsiteRenderer fetches page markup, rewrites it for color e-ink, and
// renders the result through the HTML-to-image backend.
type WebsiteRenderer struct {
	client   *http.Client
	rewriter htmlrewrite.Rewriter
	renderer rendering.HTMLRenderer
}

// New creates a website renderer from its collaborators.
func New(client *http.Client, rewriter htmlrewrite.Rewriter, renderer rendering.HTMLRenderer) *WebsiteRenderer {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &WebsiteRenderer{client: client, rewriter: rewriter, renderer: renderer}
}

func (p *WebsiteRenderer) Type() string {
	return "website_renderer"
}

func (p *WebsiteRenderer) Name() string {
	return "Website Renderer"
}

func (p *WebsiteRenderer) Description() string {
	return "Fetches a web page, optimizes its markup for color e-ink, and renders it"
}

func (p *WebsiteRenderer) Version() string {
	return "1.0.0"
}

func (p *WebsiteRenderer) ConfigSchema() string {
	return `{
		"type": "object",
		"properties": {
			"url": {
				"type": "string",
				"title": "Website URL",
				"description": "The URL of the page to render"
			},
			"zoomLevel": {
				"type": "string",
				"title": "Zoom Level",
				"description": "Device scale factor applied by the browser",
				"default": "1.0"
			},
			"captureFullPage": {
				"type": "string",
				"title": "Capture Full Page",
				"description": "Set to \"true\" to capture the entire scrollable page",
				"default": "false"
			},
			"readerMode": {
				"type": "string",
				"title": "Reader Mode",
				"description": "Set to \"true\" to extract only the main content area",
				"default": "false"
			},
			"colorSaturation": {
				"type": "string",
				"title": "Color Saturation (%)",
				"default": "120"
			},
			"contrast": {
				"type": "string",
				"title": "Contrast (%)",
				"default": "110"
			}
		},
		"required": ["url"]
	}`
}

// Validate validates the plugin settings
func (p *WebsiteRenderer) Validate(settings map[string]string) error {
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

	if _, err := ctx.ParseIntSetting("colorSaturation", htmlrewrite.DefaultSaturation); err != nil {
		return err
	}
	if _, err := ctx.ParseIntSetting("contrast", htmlrewrite.DefaultContrast); err != nil {
		return err
	}
	return nil
}

// GenerateImage fetches, rewrites, and renders the configured page. The
// result fits within the display's bounding box; full-page captures may
// be smaller than the box in one dimension.
func (p *WebsiteRenderer) GenerateImage(ctx plugins.PluginContext) (image.Image, error) {
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
	fullPage := ctx.ParseBoolSetting("captureFullPage")

	saturation, err := ctx.ParseIntSetting("colorSaturation", htmlrewrite.DefaultSaturation)
	if err != nil {
		return nil, err
	}
	contrast, err := ctx.ParseIntSetting("contrast", htmlrewrite.DefaultContrast)
	if err != nil {
		return nil, err
	}

	geom := device.ResolveGeometry(ctx.Device)

	markup, base, err := p.fetchMarkup(ctx, pageURL)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentRenderer, "Failed to fetch page markup",
			"plugin", p.Type(), "url", pageURL, "error", err)
		return nil, fmt.Errorf("screenshot generation failed: %v", err)
	}

	rewritten, err := p.rewriter.Rewrite(markup, base, htmlrewrite.Options{
		Saturation: saturation,
		Contrast:   contrast,
		ReaderMode: ctx.ParseBoolSetting("readerMode"),
	})
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentRewriter, "Failed to rewrite page markup",
			"plugin", p.Type(), "url", pageURL, "error", err)
		return nil, fmt.Errorf("screenshot generation failed: %v", err)
	}

	doc, err := rendering.WrapPage(rewritten, pageURL, geom.Width)
	if err != nil {
		return nil, fmt.Errorf("screenshot generation failed: %v", err)
	}

	img, err := p.renderer.RenderHTML(ctx.Context, doc, geom.Width, geom.Height, rendering.RenderOptions{
		DeviceScale: zoom,
		FullPage:    fullPage,
	})
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentRenderer, "Failed to capture screenshot",
			"plugin", p.Type(), "url", pageURL, "error", err)
		return nil, fmt.Errorf("screenshot generation failed: %v", err)
	}

	return capture.PostProcess(img, geom.Width, geom.Height, zoom, fullPage), nil
}

// fetchMarkup downloads the page body and returns it with the final URL
// after redirects, which is the base for resolving relative references.
func (p *WebsiteRenderer) fetchMarkup(ctx plugins.PluginContext, pageURL string) (string, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx.Context, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("failed to fetch page: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read page body: %w", err)
	}

	return string(body), resp.Request.URL, nil
}

// Register the plugin when this package is imported
func init() {
	plugins.Register(New(nil, htmlrewrite.EInkRewriter{}, rendering.NewChromiumHTMLRenderer(capture.NewChromiumInvoker())))
}
