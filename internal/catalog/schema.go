package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-hypermedia/pkg/transitions"
)

const renderHintExtension = "x-render-hint"

// bodyFields expands the operation's request-body schema field by field. Only
// JSON-object-shaped bodies are supported, either inline or through a
// single-level reference into components/schemas; anything else yields no
// fields, a recoverable degradation rather than an error.
func bodyFields(body *openapi3.RequestBodyRef, orders map[string][]string, method, path string) []transitions.Field {
	if body == nil || body.Value == nil {
		return nil
	}

	for _, media := range bodyMediaTypes {
		content := body.Value.Content.Get(media)
		if content == nil || content.Schema == nil {
			continue
		}
		schema, orderKey := resolveBodySchema(content.Schema, method, path)
		if schema == nil {
			return nil
		}
		return objectFields(schema, orders[orderKey])
	}
	return nil
}

// resolveBodySchema follows at most one $ref level and rejects non-object
// shapes. The returned key selects the recorded property order: the component
// pointer for referenced schemas, the operation slot for inline ones.
func resolveBodySchema(ref *openapi3.SchemaRef, method, path string) (*openapi3.Schema, string) {
	if ref.Value == nil {
		return nil, ""
	}
	key := strings.ToLower(method) + " " + path
	if ref.Ref != "" {
		key = componentPointer(ref.Ref)
	}

	schema := ref.Value
	if len(schema.Properties) == 0 {
		return nil, ""
	}
	if schema.Type != nil && !schema.Type.Is(openapi3.TypeObject) {
		return nil, ""
	}
	return schema, key
}

// componentPointer normalizes a schema reference to the canonical
// "#/components/schemas/<Name>" pointer used by the order index.
func componentPointer(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return "#/components/schemas/" + ref[idx+1:]
	}
	return ref
}

func objectFields(schema *openapi3.Schema, order []string) []transitions.Field {
	names := orderedNames(schema.Properties, order)
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	fields := make([]transitions.Field, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		_, isRequired := required[name]
		fields = append(fields, propertyField(name, prop, isRequired))
	}
	return fields
}

// orderedNames lays out property names in the declaration order recovered
// from the raw document, falling back to sorted names when no order was
// recorded (programmatically assembled descriptors).
func orderedNames(props openapi3.Schemas, order []string) []string {
	if len(order) > 0 {
		names := make([]string, 0, len(props))
		for _, name := range order {
			if _, ok := props[name]; ok {
				names = append(names, name)
			}
		}
		// Pick up properties the walk missed so none are dropped.
		if len(names) == len(props) {
			return names
		}
		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			seen[name] = struct{}{}
		}
		var extra []string
		for name := range props {
			if _, ok := seen[name]; !ok {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		return append(names, extra...)
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func propertyField(name string, prop *openapi3.SchemaRef, required bool) transitions.Field {
	schema := prop.Value
	declared := scalarType(schema)
	options := enumOptions(schema.Enum)

	// A bare allOf reference is how enum-typed fields point at their shared
	// component schema; lift the target's enum and type onto the field.
	if len(options) == 0 && len(schema.AllOf) > 0 {
		if target := schema.AllOf[0]; target.Ref != "" && target.Value != nil {
			options = enumOptions(target.Value.Enum)
			declared = scalarType(target.Value)
		}
	}

	inputType := declared
	switch {
	case declared == "boolean":
		inputType = "checkbox"
	case declared == "integer" || declared == "number":
		inputType = "number"
	case declared == "string" && len(options) > 0:
		inputType = "select"
	case declared == "string":
		inputType = "text"
	}

	prompt := schema.Title
	if prompt == "" {
		prompt = name
	}

	return transitions.Field{
		Name:       name,
		Type:       declared,
		Prompt:     prompt,
		Value:      schema.Default,
		Required:   required,
		InputType:  inputType,
		Options:    options,
		RenderHint: renderHint(schema),
	}
}

func enumOptions(enum []any) []string {
	if len(enum) == 0 {
		return nil
	}
	options := make([]string, 0, len(enum))
	for _, value := range enum {
		switch v := value.(type) {
		case string:
			options = append(options, v)
		default:
			options = append(options, fmt.Sprintf("%v", v))
		}
	}
	return options
}

func renderHint(schema *openapi3.Schema) string {
	raw, ok := schema.Extensions[renderHintExtension]
	if !ok {
		return ""
	}
	hint, _ := raw.(string)
	return hint
}
