package schema

import "github.com/zclconf/go-cty/cty"

// DefaultProvider produces the value used for an optional field that was not
// explicitly supplied. Providers run once per finalize call, not at schema
// definition time, so context-dependent defaults stay fresh.
type DefaultProvider func() cty.Value

// FieldSpec describes a single configurable property of a component.
type FieldSpec struct {
	// Name is the field identifier, unique within its schema.
	Name string

	// Type constrains the values the field accepts. Supplied values are
	// unified against it with cty conversion semantics.
	Type cty.Type

	// Required marks fields that must be supplied before a bag can be built.
	// Required fields never carry a default provider.
	Required bool

	// Default supplies the fallback value for optional fields. Optional
	// fields without an explicit provider default to a typed null.
	Default DefaultProvider

	// Presentational metadata carried through from declaration documents.
	Label       string
	Description string
	Metadata    map[string]string
}

// StaticDefault returns a provider that always yields the given value.
func StaticDefault(value cty.Value) DefaultProvider {
	return func() cty.Value { return value }
}

// NullDefault returns a provider yielding a typed null.
func NullDefault(ty cty.Type) DefaultProvider {
	return func() cty.Value { return cty.NullVal(ty) }
}
