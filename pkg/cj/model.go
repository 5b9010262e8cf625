package cj

// This file defines the passive Collection+JSON wire structures. They carry no
// behaviour beyond construction defaults; assembly lives in the top-level
// hypermedia package and conversion from catalog entries in pkg/transitions.

// MediaType is the Collection+JSON media type used for content negotiation.
const MediaType = "application/vnd.collection+json"

// Version is the only Collection+JSON version this module emits.
const Version = "1.0"

// Link is a plain navigational reference attached to a collection or an item.
type Link struct {
	Rel       string `json:"rel"`
	Href      string `json:"href"`
	Prompt    string `json:"prompt,omitempty"`
	Render    string `json:"render,omitempty"`
	MediaType string `json:"media_type,omitempty"`
	Method    string `json:"method,omitempty"`
}

// NewLink builds a Link with the default GET method.
func NewLink(rel, href string) Link {
	return Link{Rel: rel, Href: href, Method: "GET"}
}

// Data is a single named, typed data slot inside an item.
type Data struct {
	Name       string `json:"name"`
	Value      any    `json:"value,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
	Type       string `json:"type,omitempty"`
	InputType  string `json:"input_type,omitempty"`
	RenderHint string `json:"render_hint,omitempty"`
}

// QueryData extends Data with the option list used by select inputs.
type QueryData struct {
	Data
	Options []string `json:"options,omitempty"`
}

// TemplateData extends QueryData with the required flag submission forms need.
type TemplateData struct {
	QueryData
	Required bool `json:"required"`
}

// Query describes a search form: where to submit and which fields it carries.
type Query struct {
	Rel    string      `json:"rel"`
	Href   string      `json:"href"`
	Prompt string      `json:"prompt,omitempty"`
	Name   string      `json:"name,omitempty"`
	Data   []QueryData `json:"data"`
}

// Item is one projected domain record plus its own links.
type Item struct {
	Href  string `json:"href"`
	Rel   string `json:"rel"`
	Data  []Data `json:"data"`
	Links []Link `json:"links"`
}

// Collection is the top-level container for one response.
type Collection struct {
	Version string  `json:"version"`
	Href    string  `json:"href"`
	Title   string  `json:"title"`
	Links   []Link  `json:"links"`
	Items   []Item  `json:"items"`
	Queries []Query `json:"queries"`
}

// NewCollection initialises a Collection with the fixed version and non-nil
// lists so the wire format always carries arrays.
func NewCollection(title, href string) Collection {
	return Collection{
		Version: Version,
		Href:    href,
		Title:   title,
		Links:   []Link{},
		Items:   []Item{},
		Queries: []Query{},
	}
}

// Template describes a data-submission form.
type Template struct {
	Name   string         `json:"name"`
	Data   []TemplateData `json:"data"`
	Href   string         `json:"href,omitempty"`
	Method string         `json:"method,omitempty"`
	Prompt string         `json:"prompt,omitempty"`
	Rel    string         `json:"rel,omitempty"`
}

// NewTemplate builds a Template with the default POST method.
func NewTemplate(name string) Template {
	return Template{Name: name, Method: "POST", Data: []TemplateData{}}
}

// Error carries a user-visible failure description inside a document.
type Error struct {
	Title   string `json:"title"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Document is the complete hypermedia payload for one request. An absent or
// empty template list collapses to an omitted key rather than an empty array,
// which downstream renderers treat differently.
type Document struct {
	Collection Collection `json:"collection"`
	Template   []Template `json:"template,omitempty"`
	Error      *Error     `json:"error,omitempty"`
}
