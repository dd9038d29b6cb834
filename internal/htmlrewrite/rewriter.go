// Package htmlrewrite transforms fetched page markup into a form that
// renders well on color e-ink panels: animated and interactive elements
// are stripped, relative references are made absolute, and a
// saturation/contrast filter is injected.
package htmlrewrite

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Options control how a document is rewritten.
type Options struct {
	// Saturation and Contrast are CSS filter percentages. Zero values
	// fall back to the defaults.
	Saturation int
	Contrast   int

	// ReaderMode extracts only the main content container, discarding
	// navigation and chrome.
	ReaderMode bool
}

// Defaults for e-ink presentation: slightly oversaturated source colors
// survive the panel's muted gamut better.
const (
	DefaultSaturation = 120
	DefaultContrast   = 110
)

// Rewriter transforms page markup for the display. Implementations must
// be safe for concurrent use.
type Rewriter interface {
	Rewrite(html string, base *url.URL, opts Options) (string, error)
}

// EInkRewriter is the standard goquery-backed Rewriter.
type EInkRewriter struct{}

var (
	cssImportRe   = regexp.MustCompile(`@import[^;]*;`)
	cssFontFaceRe = regexp.MustCompile(`(?s)@font-face.*?}`)
)

// Elements that either cannot render on e-ink or drag rendering time out.
const strippedElements = "video, iframe, script, noscript, svg"

// Selectors tried in order when extracting main content in reader mode.
var mainContentSelectors = []string{
	"article", "main", ".content", "#content", ".post", ".article",
	`[role="main"]`, ".main-content", "#main-content",
}

// minMainContentLen guards reader mode against matching a stub container.
const minMainContentLen = 500

func (EInkRewriter) Rewrite(html string, base *url.URL, opts Options) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse page markup: %w", err)
	}

	saturation := opts.Saturation
	if saturation == 0 {
		saturation = DefaultSaturation
	}
	contrast := opts.Contrast
	if contrast == 0 {
		contrast = DefaultContrast
	}

	doc.Find(strippedElements).Remove()

	// Inline stylesheets stay, but @import rules and web fonts are cut:
	// both stall the capture while the browser fetches them.
	doc.Find("style").Each(func(_ int, style *goquery.Selection) {
		css := style.Text()
		css = cssImportRe.ReplaceAllString(css, "")
		css = cssFontFaceRe.ReplaceAllString(css, "")
		style.SetText(css)
	})

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}
		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") && !strings.HasPrefix(src, "data:") {
			img.SetAttr("src", absoluteURL(base, src))
		}
		img.AddClass("eink-optimized-image")
		img.SetAttr("style", fmt.Sprintf("filter: saturate(%d%%) contrast(110%%);", saturation))
	})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		for _, prefix := range []string{"http://", "https://", "#", "mailto:", "tel:"} {
			if strings.HasPrefix(href, prefix) {
				return
			}
		}
		a.SetAttr("href", absoluteURL(base, href))
	})

	doc.Find("head").AppendHtml(fmt.Sprintf(
		"<style>body { filter: saturate(%d%%) contrast(%d%%); }</style>",
		saturation, contrast))

	if opts.ReaderMode {
		if content := extractMainContent(doc); content != "" {
			return `<div id="main-content">` + content + `</div>`, nil
		}
	}

	return doc.Html()
}

// absoluteURL resolves ref against base. A nil base or unparsable ref
// leaves the reference unchanged.
func absoluteURL(base *url.URL, ref string) string {
	if base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}

// extractMainContent returns the markup of the first plausible main
// content container, or "" when none qualifies.
func extractMainContent(doc *goquery.Document) string {
	for _, selector := range mainContentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		html, err := goquery.OuterHtml(sel)
		if err != nil || len(html) < minMainContentLen {
			continue
		}
		return html
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	html, err := body.Html()
	if err != nil {
		return ""
	}
	return html
}
