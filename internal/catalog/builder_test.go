package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hypermedia/pkg/testsupport"
	"github.com/goliatone/go-hypermedia/pkg/transitions"
)

func build(t *testing.T, document string) map[string]transitions.Transition {
	t.Helper()
	doc := testsupport.DocumentFromString(t, "fixture", document)
	entries, err := Build(testsupport.Context(), doc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return entries
}

const itemsDocument = `{
  "openapi": "3.0.0",
  "info": { "title": "Items", "version": "1.0.0" },
  "paths": {
    "/items": {
      "get": {
        "operationId": "list_items",
        "summary": "List Items",
        "tags": ["items", "catalog"],
        "parameters": [
          {
            "name": "q",
            "in": "query",
            "description": "Search terms",
            "schema": { "type": "string" }
          },
          {
            "name": "limit",
            "in": "query",
            "required": true,
            "schema": { "type": "integer", "default": 25 }
          }
        ],
        "responses": { "200": { "description": "ok" } }
      },
      "post": {
        "operationId": "create_item",
        "summary": "Create Item",
        "tags": ["items"],
        "requestBody": {
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/ItemCreate" }
            }
          }
        },
        "responses": { "201": { "description": "created" } }
      }
    },
    "/items/{item_id}": {
      "get": {
        "operationId": "view_item",
        "summary": "View Item",
        "tags": ["items"],
        "parameters": [
          { "name": "item_id", "in": "path", "required": true, "schema": { "type": "string" } }
        ],
        "responses": { "200": { "description": "ok" } }
      }
    },
    "/internal": {
      "get": {
        "summary": "No operationId here",
        "responses": { "200": { "description": "ok" } }
      }
    }
  },
  "components": {
    "schemas": {
      "ItemCreate": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": { "type": "string", "title": "Item Name" },
          "description": { "type": "string", "x-render-hint": "textarea" },
          "status": { "allOf": [ { "$ref": "#/components/schemas/ItemStatus" } ], "default": "draft" },
          "priority": { "type": "integer", "default": 3 },
          "active": { "type": "boolean", "default": true }
        }
      },
      "ItemStatus": {
        "type": "string",
        "enum": ["draft", "active", "archived"]
      }
    }
  }
}`

func TestBuildSkipsUnnamedOperations(t *testing.T) {
	entries := build(t, itemsDocument)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(entries), entries)
	}
	for name := range entries {
		if name == "" {
			t.Fatalf("unnamed operation leaked into the catalog")
		}
	}
}

func TestBuildQueryParameters(t *testing.T) {
	entries := build(t, itemsDocument)

	list := entries["list_items"]
	if list.Method != "GET" || list.Href != "/items" {
		t.Fatalf("unexpected entry: %+v", list)
	}
	if list.Rel != "items catalog" || list.Tags != "items catalog" {
		t.Fatalf("expected space-joined tags, got %q", list.Rel)
	}

	want := []transitions.Field{
		{Name: "q", Type: "string", Prompt: "Search terms", InputType: "string"},
		{Name: "limit", Type: "integer", Prompt: "limit", Value: float64(25), Required: true, InputType: "integer"},
	}
	if diff := cmp.Diff(want, list.Fields); diff != "" {
		t.Fatalf("query fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPathParametersExcluded(t *testing.T) {
	entries := build(t, itemsDocument)

	view := entries["view_item"]
	if len(view.Fields) != 0 {
		t.Fatalf("path parameters must not materialize as fields: %+v", view.Fields)
	}
	if view.Href != "/items/{item_id}" {
		t.Fatalf("expected placeholder preserved in template, got %q", view.Href)
	}
}

func TestBuildBodySchemaFields(t *testing.T) {
	entries := build(t, itemsDocument)

	create := entries["create_item"]
	want := []transitions.Field{
		{Name: "name", Type: "string", Prompt: "Item Name", Required: true, InputType: "text"},
		{Name: "description", Type: "string", Prompt: "description", InputType: "text", RenderHint: "textarea"},
		{Name: "status", Type: "string", Prompt: "status", Value: "draft", InputType: "select", Options: []string{"draft", "active", "archived"}},
		{Name: "priority", Type: "integer", Prompt: "priority", Value: float64(3), InputType: "number"},
		{Name: "active", Type: "boolean", Prompt: "active", Value: true, InputType: "checkbox"},
	}
	if diff := cmp.Diff(want, create.Fields); diff != "" {
		t.Fatalf("body fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPreservesDeclarationOrder(t *testing.T) {
	// Property names chosen so sorted order differs from declaration order.
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Order", "version": "1.0.0" },
  "paths": {
    "/records": {
      "post": {
        "operationId": "create_record",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "zulu": { "type": "string" },
                  "alpha": { "type": "string" },
                  "mike": { "type": "string" }
                }
              }
            }
          }
        },
        "responses": { "201": { "description": "created" } }
      }
    }
  }
}`
	entries := build(t, document)

	record := entries["create_record"]
	var names []string
	for _, field := range record.Fields {
		names = append(names, field.Name)
	}
	want := []string{"zulu", "alpha", "mike"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("declaration order lost (-want +got):\n%s", diff)
	}
}

func TestBuildFormURLEncodedBody(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Forms", "version": "1.0.0" },
  "paths": {
    "/login": {
      "post": {
        "operationId": "login",
        "requestBody": {
          "content": {
            "application/x-www-form-urlencoded": {
              "schema": { "$ref": "#/components/schemas/LoginForm" }
            }
          }
        },
        "responses": { "200": { "description": "ok" } }
      }
    }
  },
  "components": {
    "schemas": {
      "LoginForm": {
        "type": "object",
        "required": ["username", "password"],
        "properties": {
          "username": { "type": "string" },
          "password": { "type": "string", "x-render-hint": "password" }
        }
      }
    }
  }
}`
	entries := build(t, document)

	login := entries["login"]
	if len(login.Fields) != 2 {
		t.Fatalf("expected form fields extracted, got %+v", login.Fields)
	}
	if !login.Fields[0].Required || !login.Fields[1].Required {
		t.Fatalf("expected required flags from schema, got %+v", login.Fields)
	}
	if login.Fields[1].RenderHint != "password" {
		t.Fatalf("render hint lost: %+v", login.Fields[1])
	}
}

func TestBuildUnsupportedBodyShapeDegrades(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Degrade", "version": "1.0.0" },
  "paths": {
    "/bulk": {
      "post": {
        "operationId": "bulk_upload",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": { "type": "array", "items": { "type": "string" } }
            }
          }
        },
        "responses": { "200": { "description": "ok" } }
      }
    }
  }
}`
	entries := build(t, document)

	bulk, ok := entries["bulk_upload"]
	if !ok {
		t.Fatalf("operation with unsupported body must still be catalogued")
	}
	if len(bulk.Fields) != 0 {
		t.Fatalf("expected empty field list, got %+v", bulk.Fields)
	}
}

func TestBuildUntaggedOperationHasEmptyRelation(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Tags", "version": "1.0.0" },
  "paths": {
    "/ping": {
      "get": {
        "operationId": "ping",
        "responses": { "200": { "description": "ok" } }
      }
    }
  }
}`
	entries := build(t, document)

	if entries["ping"].Rel != "" {
		t.Fatalf("expected empty relation for untagged operation, got %q", entries["ping"].Rel)
	}
}

func TestBuildAcceptsYAMLDescriptors(t *testing.T) {
	const document = `
openapi: 3.0.0
info:
  title: YAML
  version: 1.0.0
paths:
  /notes:
    post:
      operationId: create_note
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                subject:
                  type: string
                body:
                  type: string
                  x-render-hint: textarea
      responses:
        "201":
          description: created
`
	entries := build(t, document)

	note := entries["create_note"]
	var names []string
	for _, field := range note.Fields {
		names = append(names, field.Name)
	}
	want := []string{"subject", "body"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("yaml declaration order lost (-want +got):\n%s", diff)
	}
}
