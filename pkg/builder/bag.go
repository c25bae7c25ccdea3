package builder

import (
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/goliatone/go-propgen/pkg/schema"
)

// FieldValue pairs a field name with its finalized value.
type FieldValue struct {
	Name  string
	Value cty.Value
}

// Bag is the immutable result of a successful build: one value per schema
// field, either user-supplied or default-derived. Bags are safe to share.
type Bag struct {
	schema *schema.PropertySchema
	values map[string]cty.Value
}

// Get returns the finalized value for the named field.
func (b *Bag) Get(name string) (cty.Value, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Len reports the number of fields in the bag.
func (b *Bag) Len() int {
	return len(b.values)
}

// Values returns the finalized field values in schema declaration order.
func (b *Bag) Values() []FieldValue {
	out := make([]FieldValue, 0, len(b.values))
	for _, spec := range b.schema.Fields() {
		out = append(out, FieldValue{Name: spec.Name, Value: b.values[spec.Name]})
	}
	return out
}

// Schema returns the schema the bag was built against.
func (b *Bag) Schema() *schema.PropertySchema {
	return b.schema
}

// Object packs the bag into a single cty object value.
func (b *Bag) Object() cty.Value {
	attrs := make(map[string]cty.Value, len(b.values))
	for name, value := range b.values {
		attrs[name] = value
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}

// MarshalJSON encodes the bag as a JSON object keyed by field name.
func (b *Bag) MarshalJSON() ([]byte, error) {
	obj := b.Object()
	return ctyjson.Marshal(obj, obj.Type())
}
