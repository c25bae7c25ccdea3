package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/goliatone/go-propgen/internal/ctxlog"
	pkgopenapi "github.com/goliatone/go-propgen/pkg/openapi"
	"github.com/goliatone/go-propgen/pkg/schema"
)

// Parser implements pkgopenapi.Parser using kin-openapi: each object entry
// under components.schemas becomes one property schema, with the OpenAPI
// required list deciding which fields are required and JSON defaults mapped
// onto typed default providers.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// NewParser constructs a Parser with the given options.
func NewParser(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Schemas converts a Document into property schemas keyed by component
// schema name.
func (p *Parser) Schemas(ctx context.Context, doc pkgopenapi.Document) (map[string]*schema.PropertySchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	logger := ctxlog.FromContext(ctx)

	out := make(map[string]*schema.PropertySchema)
	if spec.Components != nil {
		names := make([]string, 0, len(spec.Components.Schemas))
		for name := range spec.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ref := spec.Components.Schemas[name]
			if ref == nil || ref.Value == nil {
				continue
			}
			if !isObjectSchema(ref.Value) {
				logger.Debug("skipping non-object component schema", "schema", name)
				continue
			}
			converted, err := propertySchemaFromObject(name, ref.Value)
			if err != nil {
				return nil, err
			}
			out[name] = converted
		}
	}

	if len(out) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: no component schemas extracted")
	}

	return out, nil
}

func isObjectSchema(src *openapi3.Schema) bool {
	ty := firstSchemaType(src.Type)
	return ty == "object" || (ty == "" && len(src.Properties) > 0)
}

func propertySchemaFromObject(name string, src *openapi3.Schema) (*schema.PropertySchema, error) {
	requiredSet := make(map[string]struct{}, len(src.Required))
	for _, item := range src.Required {
		requiredSet[item] = struct{}{}
	}

	propNames := make([]string, 0, len(src.Properties))
	for propName := range src.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	fields := make([]schema.FieldSpec, 0, len(propNames))
	for _, propName := range propNames {
		ref := src.Properties[propName]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, required := requiredSet[propName]
		field, err := fieldFromProperty(name, propName, ref.Value, required)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	converted, err := schema.New(fields...)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: schema %q: %w", name, err)
	}
	return converted, nil
}

func fieldFromProperty(schemaName, propName string, src *openapi3.Schema, required bool) (schema.FieldSpec, error) {
	ty, err := ctyTypeFor(src)
	if err != nil {
		return schema.FieldSpec{}, fmt.Errorf("openapi parser: schema %q, property %q: %w", schemaName, propName, err)
	}

	field := schema.FieldSpec{
		Name:        propName,
		Type:        ty,
		Required:    required,
		Label:       src.Title,
		Description: src.Description,
	}

	if src.Default != nil {
		if required {
			// OpenAPI allows a required property to also declare a default;
			// the builder's invariant does not. Required wins.
			return field, nil
		}
		value, err := defaultValueFor(src.Default, ty)
		if err != nil {
			return schema.FieldSpec{}, fmt.Errorf("openapi parser: schema %q, property %q: default: %w", schemaName, propName, err)
		}
		field.Default = schema.StaticDefault(value)
	}

	return field, nil
}

func ctyTypeFor(src *openapi3.Schema) (cty.Type, error) {
	switch firstSchemaType(src.Type) {
	case "string":
		return cty.String, nil
	case "integer", "number":
		return cty.Number, nil
	case "boolean":
		return cty.Bool, nil
	case "array":
		if src.Items == nil || src.Items.Value == nil {
			return cty.NilType, errors.New("array property must define items")
		}
		elem, err := ctyTypeFor(src.Items.Value)
		if err != nil {
			return cty.NilType, err
		}
		return cty.List(elem), nil
	case "object", "":
		if len(src.Properties) == 0 {
			return cty.DynamicPseudoType, nil
		}
		attrs := make(map[string]cty.Type, len(src.Properties))
		for name, ref := range src.Properties {
			if ref == nil || ref.Value == nil {
				continue
			}
			nested, err := ctyTypeFor(ref.Value)
			if err != nil {
				return cty.NilType, fmt.Errorf("attribute %q: %w", name, err)
			}
			attrs[name] = nested
		}
		return cty.Object(attrs), nil
	default:
		return cty.DynamicPseudoType, nil
	}
}

func defaultValueFor(raw any, ty cty.Type) (cty.Value, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("encode default: %w", err)
	}
	value, err := ctyjson.Unmarshal(payload, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("decode default: %w", err)
	}
	return value, nil
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
