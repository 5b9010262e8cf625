// Package hypermedia assembles Collection+JSON documents from a transition
// catalog derived from an API descriptor. The facade resolves heterogeneous
// link/query/template references through the catalog, projects domain records
// into items, and leaves response negotiation to pkg/representor.
package hypermedia

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-hypermedia/pkg/cj"
	"github.com/goliatone/go-hypermedia/pkg/transitions"
)

// Hypermedia builds documents against one request: it knows the request URL
// (the default collection href) and the catalog to resolve references with.
type Hypermedia struct {
	catalog    *transitions.Catalog
	requestURL string
}

// Option configures a Hypermedia facade.
type Option func(*Hypermedia)

// WithRequestURL sets the URL used as the default collection href.
func WithRequestURL(url string) Option {
	return func(h *Hypermedia) {
		h.requestURL = url
	}
}

// New constructs a facade over a resolved catalog.
func New(catalog *transitions.Catalog, options ...Option) *Hypermedia {
	h := &Hypermedia{catalog: catalog}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// FromRequest constructs a facade bound to an incoming request.
func FromRequest(catalog *transitions.Catalog, r *http.Request) *Hypermedia {
	return New(catalog, WithRequestURL(r.URL.String()))
}

// CollectionOption declares one aspect of the document under assembly.
type CollectionOption func(*collectionConfig)

type collectionConfig struct {
	href      string
	items     []any
	itemHref  func(any) string
	links     []Ref
	queries   []Ref
	templates []Ref
	err       *cj.Error
}

// WithHref overrides the default collection href.
func WithHref(href string) CollectionOption {
	return func(cfg *collectionConfig) {
		cfg.href = href
	}
}

// WithItems adds records to project into items. Each element is either an
// already-built cj.Item or a record accepted by the projector. hrefFn, when
// non-nil, computes each projected item's href.
func WithItems(items []any, hrefFn func(any) string) CollectionOption {
	return func(cfg *collectionConfig) {
		cfg.items = append(cfg.items, items...)
		if hrefFn != nil {
			cfg.itemHref = hrefFn
		}
	}
}

// WithLinks declares the collection's links.
func WithLinks(refs ...Ref) CollectionOption {
	return func(cfg *collectionConfig) {
		cfg.links = append(cfg.links, refs...)
	}
}

// WithQueries declares the collection's search forms.
func WithQueries(refs ...Ref) CollectionOption {
	return func(cfg *collectionConfig) {
		cfg.queries = append(cfg.queries, refs...)
	}
}

// WithTemplates declares the document's submission forms.
func WithTemplates(refs ...Ref) CollectionOption {
	return func(cfg *collectionConfig) {
		cfg.templates = append(cfg.templates, refs...)
	}
}

// WithError attaches an error block to the document.
func WithError(err cj.Error) CollectionOption {
	return func(cfg *collectionConfig) {
		cfg.err = &err
	}
}

// Collection assembles a complete document. Unresolvable name/handler
// references are silently dropped; a missing path parameter is a caller bug
// and always propagates as *transitions.MissingParameterError.
func (h *Hypermedia) Collection(title string, options ...CollectionOption) (cj.Document, error) {
	cfg := collectionConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	href := cfg.href
	if href == "" {
		href = h.requestURL
	}

	collection := cj.NewCollection(title, href)

	for _, record := range cfg.items {
		item, err := h.projectItem(record, cfg.itemHref)
		if err != nil {
			return cj.Document{}, err
		}
		collection.Items = append(collection.Items, item)
	}

	for _, ref := range cfg.links {
		if ref.kind == refLink {
			collection.Links = append(collection.Links, ref.link)
			continue
		}
		resolved, rel, err := h.resolve(ref)
		if err != nil {
			return cj.Document{}, err
		}
		if resolved == nil {
			continue
		}
		collection.Links = append(collection.Links, resolved.ToLink(rel))
	}

	for _, ref := range cfg.queries {
		if ref.kind == refQuery {
			collection.Queries = append(collection.Queries, ref.query)
			continue
		}
		resolved, rel, err := h.resolve(ref)
		if err != nil {
			return cj.Document{}, err
		}
		if resolved == nil {
			continue
		}
		query := resolved.ToQuery()
		if rel != "" {
			query.Rel = rel
		}
		collection.Queries = append(collection.Queries, query)
	}

	var templates []cj.Template
	for _, ref := range cfg.templates {
		if ref.kind == refTemplate {
			templates = append(templates, ref.template)
			continue
		}
		resolved, rel, err := h.resolve(ref)
		if err != nil {
			return cj.Document{}, err
		}
		if resolved == nil {
			continue
		}
		template := resolved.ToTemplate(ref.defaults)
		if rel != "" {
			template.Rel = rel
		}
		templates = append(templates, template)
	}

	return cj.Document{
		Collection: collection,
		Template:   templates,
		Error:      cfg.err,
	}, nil
}

// resolve dispatches one reference variant through the catalog, returning the
// resolved transition (nil when absent) and any relation override.
func (h *Hypermedia) resolve(ref Ref) (*transitions.Transition, string, error) {
	if h.catalog == nil {
		return nil, "", fmt.Errorf("hypermedia: catalog is not configured")
	}

	switch ref.kind {
	case refName:
		resolved, err := h.catalog.Resolve(ref.name, nil)
		return resolved, "", err
	case refNameRel:
		resolved, err := h.catalog.Resolve(ref.name, nil)
		return resolved, ref.rel, err
	case refNameParams:
		resolved, err := h.catalog.Resolve(ref.name, ref.params)
		return resolved, "", err
	case refNameRelParams:
		resolved, err := h.catalog.Resolve(ref.name, ref.params)
		return resolved, ref.rel, err
	case refHandler:
		resolved, err := h.catalog.ResolveHandler(ref.handler, ref.params)
		return resolved, ref.rel, err
	default:
		return nil, "", fmt.Errorf("hypermedia: unsupported reference kind %d", ref.kind)
	}
}

func (h *Hypermedia) projectItem(record any, hrefFn func(any) string) (cj.Item, error) {
	if item, ok := record.(cj.Item); ok {
		return item, nil
	}
	href := ""
	if hrefFn != nil {
		href = hrefFn(record)
	}
	return cj.Project(record, href, nil, "")
}
