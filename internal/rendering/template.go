package rendering

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// pageTemplate wraps rewritten page markup with a footer carrying the
// source URL and render time, so stale frames are recognisable on a
// display that may only refresh a few times a day.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
html, body { margin: 0; padding: 0; width: {{.Width}}px; }
.page-content { overflow: hidden; }
.page-footer {
    position: fixed;
    bottom: 0;
    left: 0;
    right: 0;
    padding: 2px 8px;
    background: #ffffff;
    border-top: 1px solid #000000;
    font-family: sans-serif;
    font-size: 11px;
    white-space: nowrap;
    overflow: hidden;
}
</style>
</head>
<body>
<div class="page-content">{{.Content}}</div>
<div class="page-footer">{{.SourceURL}} &middot; {{.RenderedAt}}</div>
</body>
</html>
`))

type pageContext struct {
	Content    template.HTML
	SourceURL  string
	RenderedAt string
	Width      int
}

// WrapPage embeds rewritten markup into the standard page shell for the
// given display width. The markup has already been sanitised by the
// rewriter; it is inserted verbatim.
func WrapPage(content, sourceURL string, width int) (string, error) {
	var sb strings.Builder
	err := pageTemplate.Execute(&sb, pageContext{
		Content:    template.HTML(content),
		SourceURL:  sourceURL,
		RenderedAt: time.Now().Format("2006-01-02 15:04"),
		Width:      width,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page wrapper: %w", err)
	}
	return sb.String(), nil
}
