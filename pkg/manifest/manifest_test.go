package manifest

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"

	"github.com/goliatone/go-propgen/pkg/component"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return raw
}

func decodeYAMLFixture(t *testing.T) *Manifest {
	t.Helper()
	m, err := DecodeYAML(readFixture(t, "testdata/components.yaml"))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	return m
}

func decodeHCLFixture(t *testing.T) *Manifest {
	t.Helper()
	m, err := DecodeHCL("components.hcl", readFixture(t, "testdata/components.hcl"))
	if err != nil {
		t.Fatalf("DecodeHCL: %v", err)
	}
	return m
}

func TestDecodeYAML_Structure(t *testing.T) {
	m := decodeYAMLFixture(t)

	if len(m.Capabilities) != 2 || len(m.Types) != 1 || len(m.Components) != 1 {
		t.Fatalf("unexpected shape: %d capabilities, %d types, %d components",
			len(m.Capabilities), len(m.Types), len(m.Components))
	}

	sortable := m.Capabilities[1]
	if sortable.Name != "sortable" {
		t.Fatalf("capability order not preserved: %q", sortable.Name)
	}
	if diff := cmp.Diff([]string{"comparable"}, sortable.Requires); diff != "" {
		t.Errorf("requires mismatch (-want +got):\n%s", diff)
	}

	table := m.Components[0]
	if len(table.TypeParams) != 1 {
		t.Fatalf("expected one type param, got %d", len(table.TypeParams))
	}
	item := table.TypeParams[0]
	if item.Name != "Item" || item.Default != "User" {
		t.Errorf("type param mismatch: %+v", item)
	}
	if diff := cmp.Diff([]string{"properties", "sortable"}, item.Bounds); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}

	columns := table.Fields[2]
	if !columns.Type.Equals(cty.List(cty.String)) {
		t.Errorf("columns type = %s, want list of string", columns.Type.FriendlyName())
	}
	if columns.Default == nil {
		t.Fatal("columns should carry a default")
	}
}

func TestDecodeYAML_SanitizesMetadata(t *testing.T) {
	m := decodeYAMLFixture(t)

	table := m.Components[0]
	if strings.Contains(table.Description, "<script>") || strings.Contains(table.Description, "alert") {
		t.Errorf("description not sanitized: %q", table.Description)
	}
	if !strings.Contains(table.Description, "Tabular listing") {
		t.Errorf("description text lost: %q", table.Description)
	}

	if strings.Contains(table.Icon, "script") {
		t.Errorf("icon not sanitized: %q", table.Icon)
	}
	if !strings.Contains(table.Icon, "<svg") || !strings.Contains(table.Icon, "<path") {
		t.Errorf("icon markup lost: %q", table.Icon)
	}
}

func TestDecodeHCL_MatchesYAML(t *testing.T) {
	fromYAML := decodeYAMLFixture(t)
	fromHCL := decodeHCLFixture(t)

	// The YAML fixture carries extra markup exercised by the sanitizer tests;
	// the structural pieces must line up.
	if len(fromHCL.Capabilities) != len(fromYAML.Capabilities) {
		t.Errorf("capability count mismatch: yaml %d, hcl %d", len(fromYAML.Capabilities), len(fromHCL.Capabilities))
	}
	if len(fromHCL.Types) != len(fromYAML.Types) {
		t.Errorf("type count mismatch: yaml %d, hcl %d", len(fromYAML.Types), len(fromHCL.Types))
	}

	yamlTable := fromYAML.Components[0]
	hclTable := fromHCL.Components[0]
	if diff := cmp.Diff(yamlTable.TypeParams, hclTable.TypeParams); diff != "" {
		t.Errorf("type params diverge (-yaml +hcl):\n%s", diff)
	}
	if len(hclTable.Fields) != len(yamlTable.Fields) {
		t.Fatalf("field count mismatch: yaml %d, hcl %d", len(yamlTable.Fields), len(hclTable.Fields))
	}
	for i := range hclTable.Fields {
		y, h := yamlTable.Fields[i], hclTable.Fields[i]
		if y.Name != h.Name || y.Required != h.Required || !y.Type.Equals(h.Type) {
			t.Errorf("field %d diverges: yaml %+v, hcl %+v", i, y, h)
		}
	}
}

func TestApply_RegistersAndValidates(t *testing.T) {
	m := decodeHCLFixture(t)

	registry := component.NewRegistry()
	if err := m.Apply(registry); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	table, ok := registry.Component("Table")
	if !ok {
		t.Fatal("Table not registered")
	}

	binding, err := registry.Validate(table, nil, registry.RootScope())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	merged := binding.Schema()
	for _, name := range []string{"title", "page_size", "columns", "email", "active"} {
		if _, ok := merged.Field(name); !ok {
			t.Errorf("merged schema missing field %q", name)
		}
	}
	if diff := cmp.Diff([]string{"title", "email"}, merged.RequiredNames()); diff != "" {
		t.Errorf("required names mismatch (-want +got):\n%s", diff)
	}

	pageSize, _ := merged.Field("page_size")
	if pageSize.Default == nil {
		t.Fatal("page_size should carry a default")
	}
	value := pageSize.Default()
	if got, _ := value.AsBigFloat().Int64(); got != 10 {
		t.Errorf("page_size default = %d, want 10", got)
	}
}

func TestApply_DuplicateComponentRejected(t *testing.T) {
	m := decodeYAMLFixture(t)

	registry := component.NewRegistry()
	if err := m.Apply(registry); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if err := m.Apply(registry); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestDecodeYAML_BadTypeExpression(t *testing.T) {
	raw := []byte(`components:
  - name: Broken
    fields:
      - name: oops
        type: list(any)
`)
	if _, err := DecodeYAML(raw); err == nil {
		t.Fatal("expected error for collection of any")
	}
}

func TestParseTypeString(t *testing.T) {
	cases := []struct {
		input string
		want  cty.Type
	}{
		{"string", cty.String},
		{"number", cty.Number},
		{"bool", cty.Bool},
		{"any", cty.DynamicPseudoType},
		{"list(string)", cty.List(cty.String)},
		{"map(number)", cty.Map(cty.Number)},
		{"set(bool)", cty.Set(cty.Bool)},
		{"list(list(string))", cty.List(cty.List(cty.String))},
	}
	for _, tc := range cases {
		got, err := parseTypeString(tc.input)
		if err != nil {
			t.Errorf("parseTypeString(%q): %v", tc.input, err)
			continue
		}
		if !got.Equals(tc.want) {
			t.Errorf("parseTypeString(%q) = %s, want %s", tc.input, got.FriendlyName(), tc.want.FriendlyName())
		}
	}

	for _, bad := range []string{"", "widget", "list()", "list(string, number)", "tuple(string)"} {
		if _, err := parseTypeString(bad); err == nil {
			t.Errorf("parseTypeString(%q): expected error", bad)
		}
	}
}
