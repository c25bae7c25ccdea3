package openapi

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"

	pkgopenapi "github.com/goliatone/go-propgen/pkg/openapi"
	"github.com/goliatone/go-propgen/pkg/testsupport"
)

func TestParserSchemas_ObjectComponents(t *testing.T) {
	doc := testsupport.LoadDocument(t, "testdata/petstore.yaml")
	parser := NewParser(pkgopenapi.NewParserOptions())

	schemas, err := parser.Schemas(context.Background(), doc)
	if err != nil {
		t.Fatalf("Schemas: %v", err)
	}

	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"Pet", "Toy"}, names); diff != "" {
		t.Fatalf("schema names mismatch (-want +got):\n%s", diff)
	}

	pet := schemas["Pet"]
	if diff := cmp.Diff([]string{"kind", "name"}, pet.RequiredNames()); diff != "" {
		t.Errorf("required names mismatch (-want +got):\n%s", diff)
	}

	name, ok := pet.Field("name")
	if !ok {
		t.Fatal("expected field name")
	}
	if !name.Type.Equals(cty.String) {
		t.Errorf("name type = %s, want string", name.Type.FriendlyName())
	}
	if name.Label != "Name" || name.Description == "" {
		t.Errorf("name label/description not carried over: %+v", name)
	}

	age, ok := pet.Field("age")
	if !ok {
		t.Fatal("expected field age")
	}
	if age.Required {
		t.Error("age should be optional")
	}
	if age.Default == nil {
		t.Fatal("age should carry a default")
	}
	value := age.Default()
	if got, _ := value.AsBigFloat().Int64(); got != 1 {
		t.Errorf("age default = %d, want 1", got)
	}

	tags, ok := pet.Field("tags")
	if !ok {
		t.Fatal("expected field tags")
	}
	if !tags.Type.Equals(cty.List(cty.String)) {
		t.Errorf("tags type = %s, want list of string", tags.Type.FriendlyName())
	}
}

func TestParserSchemas_OptionalDefault(t *testing.T) {
	doc := testsupport.LoadDocument(t, "testdata/petstore.yaml")
	parser := NewParser(pkgopenapi.NewParserOptions())

	schemas, err := parser.Schemas(context.Background(), doc)
	if err != nil {
		t.Fatalf("Schemas: %v", err)
	}

	toy := schemas["Toy"]
	label, ok := toy.Field("label")
	if !ok {
		t.Fatal("expected field label")
	}
	if label.Default == nil {
		t.Fatal("label should carry a default")
	}
	value := label.Default()
	if value.AsString() != "squeaky" {
		t.Errorf("label default = %q, want squeaky", value.AsString())
	}
}

func TestParserSchemas_SkipsNonObjectComponents(t *testing.T) {
	doc := testsupport.LoadDocument(t, "testdata/petstore.yaml")
	parser := NewParser(pkgopenapi.NewParserOptions())

	schemas, err := parser.Schemas(context.Background(), doc)
	if err != nil {
		t.Fatalf("Schemas: %v", err)
	}
	if _, ok := schemas["Status"]; ok {
		t.Error("string component should not produce a schema")
	}
}

func TestParserSchemas_EmptyDocumentRejected(t *testing.T) {
	raw := []byte("openapi: 3.0.3\ninfo:\n  title: Empty\n  version: 1.0.0\npaths: {}\n")
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("empty.yaml"), raw)

	parser := NewParser(pkgopenapi.ParserOptions{})
	if _, err := parser.Schemas(context.Background(), doc); err == nil {
		t.Fatal("expected error for document without component schemas")
	}

	lenient := NewParser(pkgopenapi.ParserOptions{AllowPartialDocuments: true})
	schemas, err := lenient.Schemas(context.Background(), doc)
	if err != nil {
		t.Fatalf("Schemas with partial documents allowed: %v", err)
	}
	if len(schemas) != 0 {
		t.Errorf("expected no schemas, got %d", len(schemas))
	}
}

func TestParserSchemas_RequiredFieldIgnoresDefault(t *testing.T) {
	raw := []byte(`openapi: 3.0.3
info:
  title: Required Default
  version: 1.0.0
paths: {}
components:
  schemas:
    Widget:
      type: object
      required:
        - size
      properties:
        size:
          type: integer
          default: 4
`)
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("widget.yaml"), raw)

	parser := NewParser(pkgopenapi.NewParserOptions())
	schemas, err := parser.Schemas(context.Background(), doc)
	if err != nil {
		t.Fatalf("Schemas: %v", err)
	}

	size, ok := schemas["Widget"].Field("size")
	if !ok {
		t.Fatal("expected field size")
	}
	if !size.Required {
		t.Error("size should be required")
	}
	if size.Default != nil {
		t.Error("required field must not carry a default")
	}
}
