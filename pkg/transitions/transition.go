package transitions

import (
	"reflect"
	"strings"

	"github.com/goliatone/go-hypermedia/pkg/cj"
)

// Field is one user-editable data slot of a transition, merged from the
// operation's query parameters and body schema in declaration order.
type Field struct {
	Name       string
	Type       string
	Prompt     string
	Value      any
	Required   bool
	InputType  string
	Options    []string
	RenderHint string
}

func (f Field) clone() Field {
	out := f
	if len(f.Options) > 0 {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

func (f Field) queryData() cj.QueryData {
	return cj.QueryData{
		Data: cj.Data{
			Name:       f.Name,
			Value:      f.Value,
			Prompt:     f.Prompt,
			Type:       f.Type,
			InputType:  f.InputType,
			RenderHint: f.RenderHint,
		},
		Options: append([]string(nil), f.Options...),
	}
}

func (f Field) templateData() cj.TemplateData {
	return cj.TemplateData{QueryData: f.queryData(), Required: f.Required}
}

// Transition is one catalog entry: a named, resolvable operation exposed as a
// hypermedia affordance. Values handed out by the resolver are deep copies,
// so the three conversions below are repeatable and never touch the catalog.
type Transition struct {
	Name   string
	Href   string
	Rel    string
	Tags   string
	Title  string
	Method string
	Fields []Field
}

// Clone returns a deep copy of the transition.
func (t Transition) Clone() Transition {
	out := t
	if len(t.Fields) > 0 {
		out.Fields = make([]Field, len(t.Fields))
		for i, field := range t.Fields {
			out.Fields[i] = field.clone()
		}
	}
	return out
}

// PathParams lists the placeholder names embedded in the href template.
func (t Transition) PathParams() []string {
	var params []string
	for _, segment := range strings.Split(t.Href, "{")[1:] {
		if name, _, ok := strings.Cut(segment, "}"); ok {
			params = append(params, name)
		}
	}
	return params
}

// ToLink renders the transition as a navigational link. An empty rel keeps
// the tag-derived relation.
func (t Transition) ToLink(rel string) cj.Link {
	if rel == "" {
		rel = t.Rel
	}
	return cj.Link{
		Rel:    rel,
		Href:   t.Href,
		Prompt: t.Title,
		Method: t.Method,
	}
}

// ToQuery renders the transition as a search form, carrying the field list
// verbatim.
func (t Transition) ToQuery() cj.Query {
	data := make([]cj.QueryData, 0, len(t.Fields))
	for _, field := range t.Fields {
		data = append(data, field.queryData())
	}
	return cj.Query{
		Rel:    t.Rel,
		Href:   t.Href,
		Prompt: t.Title,
		Data:   data,
	}
}

// ToTemplate renders the transition as a submission form. A supplied default
// overrides a field's schema-declared value only when it is truthy: false,
// zero, empty string and nil are treated as absent. Values of named scalar
// types (enum constants) are normalized to their underlying scalar first.
func (t Transition) ToTemplate(defaults map[string]any) cj.Template {
	data := make([]cj.TemplateData, 0, len(t.Fields))
	for _, field := range t.Fields {
		entry := field.templateData()
		if value, ok := defaults[field.Name]; ok {
			value = underlyingScalar(value)
			if truthy(value) {
				entry.Value = value
			}
		}
		data = append(data, entry)
	}
	return cj.Template{
		Name:   t.Name,
		Data:   data,
		Href:   t.Href,
		Method: t.Method,
		Prompt: t.Title,
		Rel:    t.Rel,
	}
}

// underlyingScalar converts named scalar types, such as string-backed enum
// constants, to their plain Go scalar so they serialize as their value.
func underlyingScalar(value any) any {
	if value == nil {
		return nil
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		if v.Type() != reflect.TypeOf("") {
			return v.String()
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() != reflect.TypeOf(int(0)) && v.Type() != reflect.TypeOf(int64(0)) {
			return v.Int()
		}
	case reflect.Float32, reflect.Float64:
		if v.Type() != reflect.TypeOf(float64(0)) {
			return v.Float()
		}
	}
	return value
}

func truthy(value any) bool {
	if value == nil {
		return false
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !v.IsNil()
	default:
		return true
	}
}
