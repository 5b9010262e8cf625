package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers can use to customise
// their output without mutating the document.
type RenderOptions struct {
	// PageTitle overrides the collection title in the page chrome.
	PageTitle string

	// Theme carries a resolved go-theme configuration. Renderers translate
	// its tokens into CSS custom properties and may swap partials per the
	// selected variant.
	Theme *theme.RendererConfig
}
