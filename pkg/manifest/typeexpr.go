package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// parseTypeString parses a type written as text, e.g. "string" or
// "list(number)". YAML manifests carry types this way; the grammar is the
// same one HCL manifests use for their type attributes.
func parseTypeString(raw string) (cty.Type, error) {
	if raw == "" {
		return cty.NilType, fmt.Errorf("type expression is empty")
	}
	expr, diags := hclsyntax.ParseExpression([]byte(raw), "<type>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilType, fmt.Errorf("parse type %q: %s", raw, diags.Error())
	}
	return typeFromExpression(expr)
}

// typeFromExpression converts an HCL type expression into a cty.Type. Bare
// identifiers name primitives, single-argument calls build collections.
func typeFromExpression(expr hcl.Expression) (cty.Type, error) {
	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.NilType, fmt.Errorf("type keyword must be a single identifier")
		}
		switch name := v.Traversal.RootName(); name {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.NilType, fmt.Errorf("unknown primitive type %q", name)
		}

	case *hclsyntax.FunctionCallExpr:
		if len(v.Args) != 1 {
			return cty.NilType, fmt.Errorf("type constructor %q takes exactly one argument, got %d", v.Name, len(v.Args))
		}
		elem, err := typeFromExpression(v.Args[0])
		if err != nil {
			return cty.NilType, err
		}
		if elem == cty.DynamicPseudoType {
			return cty.NilType, fmt.Errorf("collection types cannot contain type any")
		}
		switch v.Name {
		case "list":
			return cty.List(elem), nil
		case "map":
			return cty.Map(elem), nil
		case "set":
			return cty.Set(elem), nil
		default:
			return cty.NilType, fmt.Errorf("unknown type constructor %q", v.Name)
		}

	default:
		return cty.NilType, fmt.Errorf("unsupported type expression %T", v)
	}
}
