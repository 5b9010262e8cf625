package render

import (
	"context"

	"github.com/goliatone/go-hypermedia/pkg/cj"
)

// Renderer converts a hypermedia document into a byte representation (HTML,
// plain text, etc.) for clients that did not ask for the structured media
// type. Failures propagate to the representor unchanged.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc cj.Document, options RenderOptions) ([]byte, error)
}
