package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// PropertySchema is an ordered, immutable collection of field specs. The
// zero value is not usable; construct one with New or MustNew.
type PropertySchema struct {
	fields   []FieldSpec
	index    map[string]int
	required []string
}

// New validates the supplied field specs and returns a schema preserving
// their declaration order. Optional fields without an explicit default
// provider are given a typed-null provider.
func New(fields ...FieldSpec) (*PropertySchema, error) {
	s := &PropertySchema{
		fields: make([]FieldSpec, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for i, field := range fields {
		if field.Name == "" {
			return nil, fmt.Errorf("%w (position %d)", ErrEmptyFieldName, i)
		}
		if field.Type == cty.NilType {
			return nil, fmt.Errorf("%w: field %q", ErrNilFieldType, field.Name)
		}
		if _, exists := s.index[field.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, field.Name)
		}
		if field.Required && field.Default != nil {
			return nil, fmt.Errorf("%w: %q", ErrRequiredHasDefault, field.Name)
		}
		if !field.Required && field.Default == nil {
			field.Default = NullDefault(field.Type)
		}

		s.index[field.Name] = len(s.fields)
		s.fields = append(s.fields, field)
		if field.Required {
			s.required = append(s.required, field.Name)
		}
	}

	return s, nil
}

// MustNew panics when construction fails. Useful for fixtures and
// declaration-time schemas whose validity is established by review.
func MustNew(fields ...FieldSpec) *PropertySchema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Merge appends the fields of the other schemas to the receiver's, in
// argument order, producing a new schema. Name collisions across the inputs
// surface as ErrDuplicateField.
func (s *PropertySchema) Merge(others ...*PropertySchema) (*PropertySchema, error) {
	combined := append([]FieldSpec(nil), s.fields...)
	for _, other := range others {
		if other == nil {
			continue
		}
		combined = append(combined, other.fields...)
	}
	return New(combined...)
}

// Field returns the spec for the named field.
func (s *PropertySchema) Field(name string) (FieldSpec, bool) {
	idx, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[idx], true
}

// Fields returns a defensive copy of the specs in declaration order.
func (s *PropertySchema) Fields() []FieldSpec {
	return append([]FieldSpec(nil), s.fields...)
}

// RequiredNames lists required field names in declaration order.
func (s *PropertySchema) RequiredNames() []string {
	return append([]string(nil), s.required...)
}

// Len reports the total number of fields.
func (s *PropertySchema) Len() int {
	return len(s.fields)
}

// NumRequired reports how many fields are required.
func (s *PropertySchema) NumRequired() int {
	return len(s.required)
}
