package report

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gkampitakis/go-snaps/snaps"
	theme "github.com/goliatone/go-theme"
	"github.com/zclconf/go-cty/cty"

	"github.com/goliatone/go-propgen/pkg/builder"
	"github.com/goliatone/go-propgen/pkg/component"
)

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}

func newReporter(t *testing.T, options ...Option) *Reporter {
	t.Helper()
	r, err := New(options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRender_MissingRequiredFields(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&builder.MissingRequiredFieldsError{Missing: []string{"kind", "name"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "2 required fields still missing") {
		t.Errorf("missing count not rendered: %q", out)
	}
	if !strings.Contains(out, "- kind") || !strings.Contains(out, "- name") {
		t.Errorf("field list not rendered: %q", out)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRender_SingleMissingFieldSingular(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&builder.MissingRequiredFieldsError{Missing: []string{"title"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "1 required field still missing") {
		t.Errorf("singular form not rendered: %q", out)
	}
}

func TestRender_TypeMismatch(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&builder.TypeMismatchError{Field: "page_size", Want: cty.Number, Got: cty.Bool})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `"page_size"`) || !strings.Contains(out, "number") || !strings.Contains(out, "bool") {
		t.Errorf("type mismatch not rendered: %q", out)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRender_UnknownField(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&builder.UnknownFieldError{Field: "colour"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `"colour"`) {
		t.Errorf("field name not rendered: %q", out)
	}
}

func TestRender_StateConsumed(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&builder.StateConsumedError{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "returned") {
		t.Errorf("guidance not rendered: %q", out)
	}
}

func TestRender_MissingTypeArgument(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&component.MissingTypeArgumentError{
		Component: "Table",
		Param:     "Item",
		Default:   "User",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `"Item"`) || !strings.Contains(out, `"User"`) {
		t.Errorf("parameter and default not rendered: %q", out)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRender_MissingTypeArgumentWithoutDefault(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&component.MissingTypeArgumentError{Component: "Table", Param: "Item"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "hint:") {
		t.Errorf("hint rendered without a declared default: %q", out)
	}
}

func TestRender_UnsatisfiedBoundWithTrail(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&component.UnsatisfiedBoundError{
		Component: "Table",
		Param:     "Item",
		TypeName:  "Widget",
		Bound:     "sortable",
		Trail:     []string{"sortable", "comparable"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "sortable -> comparable") {
		t.Errorf("requirement chain not rendered: %q", out)
	}
	snaps.MatchSnapshot(t, out)
}

func TestRender_UnsatisfiedBoundDirect(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&component.UnsatisfiedBoundError{
		Component: "Table",
		Param:     "Item",
		TypeName:  "Widget",
		Bound:     "sortable",
		Trail:     []string{"sortable"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "requirement chain") {
		t.Errorf("chain rendered for a direct bound failure: %q", out)
	}
}

func TestRender_UnresolvedTypeName(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(&component.UnresolvedTypeNameError{
		Component: "Table",
		Param:     "Item",
		TypeName:  "Order",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `introduce "Order" as a type parameter`) {
		t.Errorf("hint not rendered: %q", out)
	}
}

func TestRender_GenericFallback(t *testing.T) {
	r := newReporter(t)

	out, err := r.Render(errors.New("something else went wrong"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "something else went wrong") {
		t.Errorf("generic message not rendered: %q", out)
	}
}

func TestRender_WrappedErrorStillClassified(t *testing.T) {
	r := newReporter(t)

	wrapped := errors.Join(errors.New("context"), &builder.UnknownFieldError{Field: "colour"})
	out, err := r.Render(wrapped)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `"colour"`) {
		t.Errorf("wrapped rejection not classified: %q", out)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestRender_ThemeTokensAvailableToTemplates(t *testing.T) {
	overrides := fstest.MapFS{
		"unknown_field.tpl": {
			Data: []byte(`{{ theme.tokens.prefix }} unknown field "{{ field }}"`),
		},
	}
	selector := &stubSelector{selection: &theme.Selection{
		Theme:   "plain",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "plain",
			Tokens: map[string]string{"prefix": "!!"},
		},
	}}

	r := newReporter(t,
		WithTemplatesFS(overrides),
		WithThemeSelector(selector, "plain", "dark"),
	)

	out, err := r.Render(&builder.UnknownFieldError{Field: "colour"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(out, "!!") {
		t.Errorf("theme token not applied: %q", out)
	}
}

func TestRender_ThemeSelectorFailure(t *testing.T) {
	selector := &stubSelector{err: errors.New("no such theme")}
	r := newReporter(t, WithThemeSelector(selector, "missing", ""))

	if _, err := r.Render(&builder.UnknownFieldError{Field: "colour"}); err == nil {
		t.Fatal("expected theme selection error")
	}
}
