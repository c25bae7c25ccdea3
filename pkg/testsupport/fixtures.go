// Package testsupport holds helpers shared by package tests: fixture document
// loading and schema construction shortcuts.
package testsupport

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/zclconf/go-cty/cty"

	pkgopenapi "github.com/goliatone/go-propgen/pkg/openapi"
	"github.com/goliatone/go-propgen/pkg/schema"
)

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source. Testing helpers fail the test on error to keep contract tests
// concise.
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

// RequiredString is a shorthand for a required string field.
func RequiredString(name string) schema.FieldSpec {
	return schema.FieldSpec{Name: name, Type: cty.String, Required: true}
}

// OptionalString is a shorthand for an optional string field with a static
// default.
func OptionalString(name, fallback string) schema.FieldSpec {
	return schema.FieldSpec{
		Name:    name,
		Type:    cty.String,
		Default: schema.StaticDefault(cty.StringVal(fallback)),
	}
}

// MustSchema builds a schema from the given fields, failing the test on
// construction errors.
func MustSchema(t *testing.T, fields ...schema.FieldSpec) *schema.PropertySchema {
	t.Helper()
	s, err := schema.New(fields...)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return s
}
