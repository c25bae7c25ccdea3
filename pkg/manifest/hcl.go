package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

type hclManifest struct {
	Capabilities []hclCapability `hcl:"capability,block"`
	Types        []hclType       `hcl:"type,block"`
	Components   []hclComponent  `hcl:"component,block"`
}

type hclCapability struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Requires    []string `hcl:"requires,optional"`
}

type hclType struct {
	Name         string     `hcl:"name,label"`
	Capabilities []string   `hcl:"capabilities,optional"`
	Fields       []hclField `hcl:"field,block"`
}

type hclComponent struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Icon        string         `hcl:"icon,optional"`
	TypeParams  []hclTypeParam `hcl:"type_param,block"`
	Fields      []hclField     `hcl:"field,block"`
}

type hclTypeParam struct {
	Name    string   `hcl:"name,label"`
	Bounds  []string `hcl:"bounds,optional"`
	Default string   `hcl:"default,optional"`
}

type hclField struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Required    bool           `hcl:"required,optional"`
	Default     cty.Value      `hcl:"default,optional"`
	Label       string         `hcl:"label,optional"`
	Description string         `hcl:"description,optional"`
}

// DecodeHCL parses an HCL manifest document. Field types are written as bare
// type expressions (string, list(number)); defaults are literal cty values.
func DecodeHCL(filename string, src []byte) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("manifest: parse hcl %s: %s", filename, diags.Error())
	}

	var doc hclManifest
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("manifest: decode hcl %s: %s", filename, diags.Error())
	}

	out := &Manifest{}

	for _, cap := range doc.Capabilities {
		out.Capabilities = append(out.Capabilities, CapabilityDecl{
			Name:        cap.Name,
			Description: sanitizeText(cap.Description),
			Requires:    cap.Requires,
		})
	}

	for _, ty := range doc.Types {
		fields, err := hclFields(ty.Fields)
		if err != nil {
			return nil, fmt.Errorf("manifest: type %q: %w", ty.Name, err)
		}
		out.Types = append(out.Types, TypeDecl{
			Name:         ty.Name,
			Capabilities: ty.Capabilities,
			Fields:       fields,
		})
	}

	for _, comp := range doc.Components {
		fields, err := hclFields(comp.Fields)
		if err != nil {
			return nil, fmt.Errorf("manifest: component %q: %w", comp.Name, err)
		}
		params := make([]TypeParamDecl, 0, len(comp.TypeParams))
		for _, param := range comp.TypeParams {
			params = append(params, TypeParamDecl{
				Name:    param.Name,
				Bounds:  param.Bounds,
				Default: param.Default,
			})
		}
		out.Components = append(out.Components, ComponentDecl{
			Name:        comp.Name,
			Description: sanitizeText(comp.Description),
			Icon:        sanitizeIconMarkup(comp.Icon),
			TypeParams:  params,
			Fields:      fields,
		})
	}

	return out, nil
}

func hclFields(fields []hclField) ([]FieldDecl, error) {
	out := make([]FieldDecl, 0, len(fields))
	for _, field := range fields {
		ty, err := typeFromExpression(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		decl := FieldDecl{
			Name:        field.Name,
			Type:        ty,
			Required:    field.Required,
			Label:       sanitizeText(field.Label),
			Description: sanitizeText(field.Description),
		}
		if !field.Default.IsNull() {
			value := field.Default
			decl.Default = &value
		}
		out = append(out, decl)
	}
	return out, nil
}
