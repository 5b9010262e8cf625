package hypermedia

import "github.com/goliatone/go-hypermedia/pkg/cj"

// refKind discriminates the transition reference variants the assembler
// accepts. Dispatching on an explicit tag keeps resolution a single
// exhaustive switch instead of runtime type sniffing.
type refKind int

const (
	refName refKind = iota
	refNameRel
	refNameParams
	refNameRelParams
	refHandler
	refLink
	refQuery
	refTemplate
)

// Ref is a declaration of a link, query, or template to include in a
// document: an operation name (optionally with a relation override and path
// parameters), a handler identity, or an already-built representation passed
// through unchanged.
type Ref struct {
	kind     refKind
	name     string
	rel      string
	params   map[string]string
	handler  any
	link     cj.Link
	query    cj.Query
	template cj.Template
	defaults map[string]any
}

// Name references an operation by name, resolved with an empty context and
// its tag-derived relation.
func Name(name string) Ref {
	return Ref{kind: refName, name: name}
}

// NameRel references an operation by name with a relation override.
func NameRel(name, rel string) Ref {
	return Ref{kind: refNameRel, name: name, rel: rel}
}

// NameParams references an operation by name with path parameters.
func NameParams(name string, params map[string]string) Ref {
	return Ref{kind: refNameParams, name: name, params: params}
}

// NameRelParams references an operation by name with both a relation
// override and path parameters.
func NameRelParams(name, rel string, params map[string]string) Ref {
	return Ref{kind: refNameRelParams, name: name, rel: rel, params: params}
}

// Handler references an operation by the function that implements it. The
// function must have been bound on the catalog's handle map.
func Handler(fn any) Ref {
	return Ref{kind: refHandler, handler: fn}
}

// PrebuiltLink passes an already-built link through unchanged.
func PrebuiltLink(link cj.Link) Ref {
	return Ref{kind: refLink, link: link}
}

// PrebuiltQuery passes an already-built query through unchanged.
func PrebuiltQuery(query cj.Query) Ref {
	return Ref{kind: refQuery, query: query}
}

// PrebuiltTemplate passes an already-built template through unchanged.
func PrebuiltTemplate(template cj.Template) Ref {
	return Ref{kind: refTemplate, template: template}
}

// WithDefaults attaches field defaults applied when the reference is
// rendered as a template. Only truthy values override schema-declared field
// values.
func (r Ref) WithDefaults(defaults map[string]any) Ref {
	r.defaults = defaults
	return r
}
