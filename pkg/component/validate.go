package component

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/goliatone/go-propgen/pkg/builder"
	"github.com/goliatone/go-propgen/pkg/schema"
)

// Binding is the result of a successful instantiation validation: the
// component, its resolved type arguments, and the bound-specific schema (base
// schema merged with the schemas contributed by schema-producing arguments,
// in type parameter declaration order).
type Binding struct {
	Component Component
	Arguments map[string]TypeInfo

	merged *schema.PropertySchema
}

// Schema returns the bound-specific property schema.
func (b *Binding) Schema() *schema.PropertySchema {
	return b.merged
}

// Start begins a builder chain against the binding's schema.
func (b *Binding) Start() *builder.State {
	return builder.Start(b.merged)
}

// Validate checks a use-site against a component declaration. Every type
// parameter must resolve to a concrete type through the supplied args, its
// declared default, or fail with a structured rejection; every resolved
// argument must satisfy the parameter's capability bounds. Nothing is
// constructed until all parameters pass.
func (r *Registry) Validate(c Component, args map[string]string, scope *Scope) (*Binding, error) {
	if scope == nil {
		scope = r.RootScope()
	}

	resolved := make(map[string]TypeInfo, len(c.TypeParams))
	contributed := make([]*schema.PropertySchema, 0, len(c.TypeParams))

	for _, param := range c.TypeParams {
		name, ok := args[param.Name]
		if !ok || name == "" {
			if param.Default == "" {
				return nil, &MissingTypeArgumentError{Component: c.Name, Param: param.Name}
			}
			name = param.Default
		}

		info, found := scope.Resolve(name)
		if !found {
			// Report the declared default alongside the miss when the
			// use-site supplied nothing and the default itself is absent.
			if _, supplied := args[param.Name]; !supplied && name == param.Default {
				return nil, &MissingTypeArgumentError{Component: c.Name, Param: param.Name, Default: param.Default}
			}
			return nil, &UnresolvedTypeNameError{Component: c.Name, Param: param.Name, TypeName: name}
		}

		for _, bound := range param.Bounds {
			if err := r.checkBound(c.Name, param.Name, info, bound); err != nil {
				return nil, err
			}
		}

		resolved[param.Name] = info
		if info.Schema != nil {
			contributed = append(contributed, info.Schema)
		}
	}

	base := c.Schema
	if base == nil {
		empty, err := schema.New()
		if err != nil {
			return nil, fmt.Errorf("component: empty schema: %w", err)
		}
		base = empty
	}
	merged, err := base.Merge(contributed...)
	if err != nil {
		return nil, fmt.Errorf("component %q: merge bound schemas: %w", c.Name, err)
	}

	return &Binding{Component: c, Arguments: resolved, merged: merged}, nil
}

// checkBound verifies info satisfies the named capability, following derived
// requirements depth-first and reporting the trail to the first failure.
func (r *Registry) checkBound(componentName, paramName string, info TypeInfo, bound string) error {
	trail, err := r.unsatisfiedTrail(info, bound, nil, make(map[string]struct{}))
	if err != nil {
		return err
	}
	if trail != nil {
		return &UnsatisfiedBoundError{
			Component: componentName,
			Param:     paramName,
			TypeName:  info.Name,
			Bound:     bound,
			Trail:     trail,
		}
	}
	return nil
}

// unsatisfiedTrail returns nil when info satisfies the capability, or the
// derivation chain ending at the first failing requirement. Cycles in the
// requirement graph are treated as satisfied once revisited.
func (r *Registry) unsatisfiedTrail(info TypeInfo, capability string, path []string, visiting map[string]struct{}) ([]string, error) {
	if _, active := visiting[capability]; active {
		return nil, nil
	}
	visiting[capability] = struct{}{}
	defer delete(visiting, capability)

	decl, known := r.capabilities[capability]
	if !known {
		return nil, &UnknownCapabilityError{Name: capability}
	}

	path = append(path, capability)

	if !info.lists(capability) {
		return append([]string(nil), path...), nil
	}
	if capability == CapabilityProperties && info.Schema == nil {
		// Listing the name is not enough; the type must actually carry a
		// schema to satisfy the properties capability.
		return append([]string(nil), path...), nil
	}

	requires := append([]string(nil), decl.Requires...)
	sort.Strings(requires)
	for _, req := range requires {
		trail, err := r.unsatisfiedTrail(info, req, path, visiting)
		if err != nil {
			return nil, err
		}
		if trail != nil {
			return trail, nil
		}
	}
	return nil, nil
}

// Instance pairs a validated binding with the property bag built for it.
type Instance struct {
	Binding *Binding
	Bag     *builder.Bag
}

// Instantiate is the entry point gluing validation to construction: it runs
// a full builder chain over the binding's schema with the supplied field
// values and finalizes the bag. The first rejection aborts with no side
// effects. Assignments are applied in sorted name order; the builder's
// checklist semantics make the order immaterial.
func Instantiate(binding *Binding, values map[string]cty.Value) (*Instance, error) {
	if binding == nil {
		return nil, fmt.Errorf("component: binding is required")
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	state := binding.Start()
	for _, name := range names {
		next, err := state.Set(name, values[name])
		if err != nil {
			return nil, err
		}
		state = next
	}

	bag, err := state.Build()
	if err != nil {
		return nil, err
	}

	return &Instance{Binding: binding, Bag: bag}, nil
}
