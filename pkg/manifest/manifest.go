package manifest

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/goliatone/go-propgen/pkg/component"
	"github.com/goliatone/go-propgen/pkg/schema"
)

// Manifest is the format-neutral declaration document: capabilities, concrete
// types, and components, in document order.
type Manifest struct {
	Capabilities []CapabilityDecl
	Types        []TypeDecl
	Components   []ComponentDecl
}

// CapabilityDecl declares a named capability and the capabilities it pulls in.
type CapabilityDecl struct {
	Name        string
	Description string
	Requires    []string
}

// TypeDecl declares a concrete type argument candidate. Types listing the
// properties capability contribute the schema built from their fields.
type TypeDecl struct {
	Name         string
	Capabilities []string
	Fields       []FieldDecl
}

// ComponentDecl declares a component, its type parameters, and its base
// fields.
type ComponentDecl struct {
	Name        string
	Description string
	Icon        string
	TypeParams  []TypeParamDecl
	Fields      []FieldDecl
}

// TypeParamDecl declares one type parameter with its capability bounds and
// optional default argument name.
type TypeParamDecl struct {
	Name    string
	Bounds  []string
	Default string
}

// FieldDecl declares one property field. Default is nil for required fields
// and for optional fields that fall back to a typed null.
type FieldDecl struct {
	Name        string
	Type        cty.Type
	Required    bool
	Default     *cty.Value
	Label       string
	Description string
}

// Apply registers every declaration in the manifest on the registry, in
// document order: capabilities first so type and component bounds can refer
// to them, then types, then components.
func (m *Manifest) Apply(registry *component.Registry) error {
	for _, decl := range m.Capabilities {
		err := registry.RegisterCapability(component.Capability{
			Name:        decl.Name,
			Description: decl.Description,
			Requires:    decl.Requires,
		})
		if err != nil {
			return fmt.Errorf("manifest: apply capability %q: %w", decl.Name, err)
		}
	}

	for _, decl := range m.Types {
		info := component.TypeInfo{
			Name:         decl.Name,
			Capabilities: decl.Capabilities,
		}
		if len(decl.Fields) > 0 {
			built, err := buildSchema(decl.Fields)
			if err != nil {
				return fmt.Errorf("manifest: apply type %q: %w", decl.Name, err)
			}
			info.Schema = built
		}
		if err := registry.RegisterType(info); err != nil {
			return fmt.Errorf("manifest: apply type %q: %w", decl.Name, err)
		}
	}

	for _, decl := range m.Components {
		built, err := buildSchema(decl.Fields)
		if err != nil {
			return fmt.Errorf("manifest: apply component %q: %w", decl.Name, err)
		}
		params := make([]component.TypeParam, 0, len(decl.TypeParams))
		for _, param := range decl.TypeParams {
			params = append(params, component.TypeParam{
				Name:    param.Name,
				Bounds:  param.Bounds,
				Default: param.Default,
			})
		}
		err = registry.RegisterComponent(component.Component{
			Name:        decl.Name,
			Description: decl.Description,
			TypeParams:  params,
			Schema:      built,
		})
		if err != nil {
			return fmt.Errorf("manifest: apply component %q: %w", decl.Name, err)
		}
	}

	return nil
}

func buildSchema(fields []FieldDecl) (*schema.PropertySchema, error) {
	specs := make([]schema.FieldSpec, 0, len(fields))
	for _, decl := range fields {
		spec := schema.FieldSpec{
			Name:        decl.Name,
			Type:        decl.Type,
			Required:    decl.Required,
			Label:       decl.Label,
			Description: decl.Description,
		}
		if decl.Default != nil {
			value, err := convert.Convert(*decl.Default, decl.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: default: %w", decl.Name, err)
			}
			spec.Default = schema.StaticDefault(value)
		}
		specs = append(specs, spec)
	}
	return schema.New(specs...)
}
