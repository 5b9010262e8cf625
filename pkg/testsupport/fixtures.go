// Package testsupport carries fixture helpers shared by contract tests across
// packages.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	pkgopenapi "github.com/goliatone/go-hypermedia/pkg/openapi"
)

// LoadDocument reads a descriptor fixture and wraps it as an
// openapi.Document with a file source. Helpers fail the test to keep
// contract tests concise.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

type inlineSource struct{ name string }

func (s inlineSource) Kind() pkgopenapi.SourceKind { return pkgopenapi.SourceKindFS }
func (s inlineSource) Location() string            { return s.name }

// DocumentFromString wraps an inline descriptor literal as a Document, the
// fixture style used by catalog contract tests.
func DocumentFromString(t *testing.T, name, raw string) pkgopenapi.Document {
	t.Helper()

	doc, err := pkgopenapi.NewDocument(inlineSource{name: name}, []byte(raw))
	if err != nil {
		t.Fatalf("inline document: %v", err)
	}
	return doc
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
