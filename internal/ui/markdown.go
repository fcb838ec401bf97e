package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// mdCache holds one glamour renderer keyed by width and style.
var mdCache struct {
	sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

func markdownRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}

	mdCache.Lock()
	defer mdCache.Unlock()
	if mdCache.renderer != nil && mdCache.width == width && mdCache.style == style {
		return mdCache.renderer, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	mdCache.renderer, mdCache.width, mdCache.style = r, width, style
	return r, nil
}

// RenderMarkdownWithStyle renders markdown content using the specified glamour style.
// Returns the original content if rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := markdownRenderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

// PreviewLink renders an inserted link the way a markdown viewer shows it.
// Block references have no markdown form, so they are shown as inline code
// next to their anchor text.
func PreviewLink(text string, width int, style string) string {
	if strings.HasPrefix(text, "((") {
		if i := strings.Index(text, " \""); i > 0 && strings.HasSuffix(text, "\"))") {
			anchor := text[i+2 : len(text)-3]
			text = "**" + anchor + "** `" + text + "`"
		}
	}
	return RenderMarkdownWithStyle(text, width, style)
}
