package catalog

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// propertyOrder recovers the declaration order of schema properties from the
// raw descriptor. kin-openapi stores properties in Go maps, which lose the
// author's ordering, so the document is re-walked as a yaml.Node tree (YAML
// being a superset of JSON, this covers both encodings). The result maps a
// schema key to its ordered property names:
//
//	"#/components/schemas/<Name>"  component schemas
//	"<method> <path>"              inline request-body schemas
//
// A document that fails this walk simply yields no recorded order; the
// builder falls back to sorted names.
func propertyOrder(raw []byte) map[string][]string {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil
	}
	doc := unwrapDocument(&root)
	if doc == nil {
		return nil
	}

	orders := make(map[string][]string)

	if schemas := lookupPath(doc, "components", "schemas"); schemas != nil {
		for name, node := range mappingEntries(schemas) {
			if props := lookupPath(node, "properties"); props != nil {
				orders["#/components/schemas/"+name] = mappingKeys(props)
			}
		}
	}

	if paths := lookupPath(doc, "paths"); paths != nil {
		for path, pathItem := range mappingEntries(paths) {
			for method, operation := range mappingEntries(pathItem) {
				content := lookupPath(operation, "requestBody", "content")
				if content == nil {
					continue
				}
				for _, media := range bodyMediaTypes {
					props := lookupPath(content, media, "schema", "properties")
					if props == nil {
						continue
					}
					orders[strings.ToLower(method)+" "+path] = mappingKeys(props)
					break
				}
			}
		}
	}

	return orders
}

func unwrapDocument(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// lookupPath descends through nested mappings by key.
func lookupPath(node *yaml.Node, keys ...string) *yaml.Node {
	current := node
	for _, key := range keys {
		if current == nil || current.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(current.Content); i += 2 {
			if current.Content[i].Value == key {
				next = current.Content[i+1]
				break
			}
		}
		current = next
	}
	return current
}

// mappingEntries collects a mapping node's key/value pairs for lookup by key.
func mappingEntries(node *yaml.Node) map[string]*yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	entries := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		entries[node.Content[i].Value] = node.Content[i+1]
	}
	return entries
}

func mappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}
