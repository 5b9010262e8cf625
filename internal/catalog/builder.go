package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-hypermedia/pkg/openapi"
	"github.com/goliatone/go-hypermedia/pkg/transitions"
)

// bodyMediaTypes lists the request-body encodings whose schemas are expanded
// into transition fields, in preference order.
var bodyMediaTypes = []string{"application/json", "application/x-www-form-urlencoded"}

// Build introspects an API descriptor and produces the name-indexed transition
// table. Operations without an operationId are not exposed. Malformed or
// unsupported body schemas degrade to an empty field list rather than failing
// the build.
func Build(ctx context.Context, doc pkgopenapi.Document) (map[string]transitions.Transition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, fmt.Errorf("catalog: descriptor payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: load descriptor: %w", err)
	}

	orders := propertyOrder(raw)

	entries := make(map[string]transitions.Transition)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			collect(entries, orders, "GET", path, item.Get)
			collect(entries, orders, "PUT", path, item.Put)
			collect(entries, orders, "POST", path, item.Post)
			collect(entries, orders, "DELETE", path, item.Delete)
			collect(entries, orders, "PATCH", path, item.Patch)
			collect(entries, orders, "HEAD", path, item.Head)
			collect(entries, orders, "OPTIONS", path, item.Options)
		}
	}

	return entries, nil
}

func collect(entries map[string]transitions.Transition, orders map[string][]string, method, path string, op *openapi3.Operation) {
	if op == nil || op.OperationID == "" {
		return
	}

	fields := queryFields(op.Parameters)
	fields = append(fields, bodyFields(op.RequestBody, orders, method, path)...)

	tags := strings.Join(op.Tags, " ")
	entries[op.OperationID] = transitions.Transition{
		Name:   op.OperationID,
		Href:   path,
		Rel:    tags,
		Tags:   tags,
		Title:  op.Summary,
		Method: method,
		Fields: fields,
	}
}

// queryFields materializes declared query-string parameters in declaration
// order. Path parameters are read but deliberately skipped: they are URL
// placeholders, not user-editable data.
func queryFields(params openapi3.Parameters) []transitions.Field {
	var fields []transitions.Field
	for _, ref := range params {
		if ref == nil || ref.Value == nil {
			continue
		}
		param := ref.Value
		if param.In != openapi3.ParameterInQuery {
			continue
		}

		declared := "string"
		var value any
		if param.Schema != nil && param.Schema.Value != nil {
			declared = scalarType(param.Schema.Value)
			value = param.Schema.Value.Default
		}

		prompt := param.Description
		if prompt == "" {
			prompt = param.Name
		}

		fields = append(fields, transitions.Field{
			Name:      param.Name,
			Type:      declared,
			Prompt:    prompt,
			Value:     value,
			Required:  param.Required,
			InputType: declared,
		})
	}
	return fields
}

func scalarType(schema *openapi3.Schema) string {
	if schema.Type != nil {
		for _, t := range *schema.Type {
			if t != "null" {
				return t
			}
		}
	}
	return "string"
}
