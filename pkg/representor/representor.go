// Package representor negotiates the outgoing representation of a hypermedia
// document: structured Collection+JSON for clients that ask for it, delegated
// rendering (typically HTML) for everyone else.
package representor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-hypermedia/pkg/cj"
	"github.com/goliatone/go-hypermedia/pkg/render"
)

// Response is the outgoing payload plus the headers a handler needs to write
// it.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Write sends the response over an http.ResponseWriter.
func (r *Response) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", r.ContentType)
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(r.Body)
	return err
}

// Option configures a Representor.
type Option func(*Representor)

// WithRenderer sets the collaborator used for non-hypermedia clients.
func WithRenderer(renderer render.Renderer) Option {
	return func(r *Representor) {
		r.renderer = renderer
	}
}

// WithRegistry selects the named renderer out of a registry.
func WithRegistry(registry *render.Registry, name string) Option {
	return func(r *Representor) {
		if registry == nil {
			return
		}
		if renderer, err := registry.Get(name); err == nil {
			r.renderer = renderer
		}
	}
}

// WithRenderOptions sets the options forwarded to the rendering collaborator.
func WithRenderOptions(options render.RenderOptions) Option {
	return func(r *Representor) {
		r.renderOptions = options
	}
}

// Representor picks the response representation from the Accept header.
type Representor struct {
	renderer      render.Renderer
	renderOptions render.RenderOptions
}

// New constructs a Representor. Without a renderer it can only serve the
// structured media type.
func New(options ...Option) *Representor {
	r := &Representor{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Represent serializes the document as Collection+JSON when any Accept token
// matches the hypermedia media type exactly, and otherwise delegates to the
// rendering collaborator. Matching is existence-based over the whole token
// list: token order and quality weights are not considered.
func (r *Representor) Represent(ctx context.Context, doc cj.Document, accept string) (*Response, error) {
	if acceptsCollectionJSON(accept) {
		body, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("representor: marshal document: %w", err)
		}
		return &Response{ContentType: cj.MediaType, Body: body}, nil
	}

	if r.renderer == nil {
		return nil, fmt.Errorf("representor: no renderer configured for accept %q", accept)
	}

	body, err := r.renderer.Render(ctx, doc, r.renderOptions)
	if err != nil {
		return nil, err
	}
	return &Response{ContentType: r.renderer.ContentType(), Body: body}, nil
}

func acceptsCollectionJSON(accept string) bool {
	for _, token := range strings.Split(accept, ",") {
		if strings.TrimSpace(token) == cj.MediaType {
			return true
		}
	}
	return false
}
