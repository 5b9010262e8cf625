package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hypermedia/pkg/cj"
	"github.com/goliatone/go-hypermedia/pkg/render"
	rendertemplate "github.com/goliatone/go-hypermedia/pkg/render/template"
	gotemplate "github.com/goliatone/go-hypermedia/pkg/render/template/gotemplate"
)

// Option configures the vanilla renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces a standalone HTML page for a hypermedia document: link
// navigation, item listings, query forms, and template forms.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render assembles the template context from the document and executes the
// embedded collection page.
func (r *Renderer) Render(_ context.Context, doc cj.Document, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	doc = sanitizeDocument(doc)

	title := options.PageTitle
	if title == "" {
		title = doc.Collection.Title
	}

	payload := struct {
		Title      string        `json:"title"`
		Collection cj.Collection `json:"collection"`
		Template   []cj.Template `json:"template"`
		Error      *cj.Error     `json:"error"`
		ThemeCSS   string        `json:"theme_css"`
	}{
		Title:      title,
		Collection: doc.Collection,
		Template:   doc.Template,
		Error:      doc.Error,
		ThemeCSS:   themeCSS(options.Theme),
	}

	result, err := r.templates.RenderTemplate("templates/collection.tmpl", payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// themeCSS flattens a resolved go-theme configuration into CSS custom
// properties scoped to the page root.
func themeCSS(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}

	vars := cfg.CSSVars
	if len(vars) == 0 && len(cfg.Tokens) > 0 {
		vars = make(map[string]string, len(cfg.Tokens))
		for token, value := range cfg.Tokens {
			vars["--"+token] = value
		}
	}
	if len(vars) == 0 {
		return ""
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {")
	for _, name := range names {
		fmt.Fprintf(&b, " %s: %s;", name, vars[name])
	}
	b.WriteString(" }")
	return b.String()
}
