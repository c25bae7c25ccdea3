package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

type yamlManifest struct {
	Capabilities []yamlCapability `yaml:"capabilities"`
	Types        []yamlType       `yaml:"types"`
	Components   []yamlComponent  `yaml:"components"`
}

type yamlCapability struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Requires    []string `yaml:"requires"`
}

type yamlType struct {
	Name         string      `yaml:"name"`
	Capabilities []string    `yaml:"capabilities"`
	Fields       []yamlField `yaml:"fields"`
}

type yamlComponent struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Icon        string          `yaml:"icon"`
	TypeParams  []yamlTypeParam `yaml:"type_params"`
	Fields      []yamlField     `yaml:"fields"`
}

type yamlTypeParam struct {
	Name    string   `yaml:"name"`
	Bounds  []string `yaml:"bounds"`
	Default string   `yaml:"default"`
}

type yamlField struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Default     any    `yaml:"default"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// DecodeYAML parses a YAML manifest document. Field types use the textual
// type grammar ("string", "list(number)"); labels and descriptions are
// sanitized, icon markup is reduced to a safe SVG subset.
func DecodeYAML(raw []byte) (*Manifest, error) {
	var doc yamlManifest
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("manifest: decode yaml: %w", err)
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
		fields, err := yamlFields(ty.Fields)
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
		fields, err := yamlFields(comp.Fields)
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

func yamlFields(fields []yamlField) ([]FieldDecl, error) {
	out := make([]FieldDecl, 0, len(fields))
	for _, field := range fields {
		ty, err := parseTypeString(field.Type)
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
		if field.Default != nil {
			value, err := yamlDefault(field.Default, ty)
			if err != nil {
				return nil, fmt.Errorf("field %q: default: %w", field.Name, err)
			}
			decl.Default = &value
		}
		out = append(out, decl)
	}
	return out, nil
}

func yamlDefault(raw any, ty cty.Type) (cty.Value, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("encode: %w", err)
	}
	value, err := ctyjson.Unmarshal(payload, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("decode: %w", err)
	}
	return value, nil
}
