package builder

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/goliatone/go-propgen/pkg/schema"
)

// State is one point in a builder chain. Its identity is the checklist of
// required fields still missing, so required fields may arrive in any order.
// A schema with zero required fields starts terminal.
type State struct {
	schema   *schema.PropertySchema
	values   map[string]cty.Value
	missing  map[string]struct{}
	consumed bool
}

// Start returns the initial state for the given schema.
func Start(s *schema.PropertySchema) *State {
	missing := make(map[string]struct{}, s.NumRequired())
	for _, name := range s.RequiredNames() {
		missing[name] = struct{}{}
	}
	return &State{
		schema:  s,
		values:  make(map[string]cty.Value, s.Len()),
		missing: missing,
	}
}

// Set consumes the state and returns the successor with the named field
// assigned. Supplying a still-missing required field removes it from the
// checklist; optional fields and repeated assignments leave the checklist
// unchanged, with the last write winning. Values are unified against the
// field's declared type; failure to convert is a TypeMismatchError.
func (st *State) Set(name string, value cty.Value) (*State, error) {
	if st.consumed {
		return nil, &StateConsumedError{}
	}

	spec, ok := st.schema.Field(name)
	if !ok {
		return nil, &UnknownFieldError{Field: name}
	}

	converted, err := convert.Convert(value, spec.Type)
	if err != nil {
		return nil, &TypeMismatchError{Field: name, Want: spec.Type, Got: value.Type()}
	}

	st.consumed = true

	next := &State{
		schema:  st.schema,
		values:  make(map[string]cty.Value, len(st.values)+1),
		missing: make(map[string]struct{}, len(st.missing)),
	}
	for k, v := range st.values {
		next.values[k] = v
	}
	next.values[name] = converted
	for k := range st.missing {
		if k != name {
			next.missing[k] = struct{}{}
		}
	}

	return next, nil
}

// Schema returns the schema this state builds against.
func (st *State) Schema() *schema.PropertySchema {
	return st.schema
}

// Terminal reports whether the checklist is empty and the state can build.
func (st *State) Terminal() bool {
	return len(st.missing) == 0
}

// Missing returns the sorted names of required fields not yet supplied.
func (st *State) Missing() []string {
	if len(st.missing) == 0 {
		return nil
	}
	out := make([]string, 0, len(st.missing))
	for name := range st.missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build consumes a terminal state and finalizes the bag. Unsupplied optional
// fields are filled from their default providers here, once per build, so
// context-dependent defaults are evaluated as late as possible. Building a
// non-terminal state is rejected with the exact set of missing field names.
func (st *State) Build() (*Bag, error) {
	if st.consumed {
		return nil, &StateConsumedError{}
	}
	if missing := st.Missing(); len(missing) > 0 {
		return nil, &MissingRequiredFieldsError{Missing: missing}
	}

	st.consumed = true

	values := make(map[string]cty.Value, st.schema.Len())
	for _, spec := range st.schema.Fields() {
		if supplied, ok := st.values[spec.Name]; ok {
			values[spec.Name] = supplied
			continue
		}
		fallback := spec.Default()
		converted, err := convert.Convert(fallback, spec.Type)
		if err != nil {
			return nil, fmt.Errorf("builder: default for field %q: %w", spec.Name,
				&TypeMismatchError{Field: spec.Name, Want: spec.Type, Got: fallback.Type()})
		}
		values[spec.Name] = converted
	}

	return &Bag{schema: st.schema, values: values}, nil
}
