package hypermedia

import (
	"context"

	internalcatalog "github.com/goliatone/go-hypermedia/internal/catalog"
	internalloader "github.com/goliatone/go-hypermedia/internal/openapi/loader"
	pkgopenapi "github.com/goliatone/go-hypermedia/pkg/openapi"
	"github.com/goliatone/go-hypermedia/pkg/transitions"
)

// NewLoader constructs a descriptor loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// BuildCatalog introspects a loaded descriptor and returns the transition
// catalog.
func BuildCatalog(ctx context.Context, doc pkgopenapi.Document, options ...transitions.Option) (*transitions.Catalog, error) {
	entries, err := internalcatalog.Build(ctx, doc)
	if err != nil {
		return nil, err
	}
	return transitions.New(entries, options...), nil
}

// NewCache wires a loader and the catalog builder into a lazily built,
// per-application-instance catalog cache. The descriptor is fetched and
// parsed on the first resolution request.
func NewCache(src pkgopenapi.Source, loader pkgopenapi.Loader, options ...transitions.Option) *transitions.Cache {
	if loader == nil {
		loader = NewLoader()
	}
	return transitions.NewCache(func(ctx context.Context) (*transitions.Catalog, error) {
		doc, err := loader.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		return BuildCatalog(ctx, doc, options...)
	})
}
