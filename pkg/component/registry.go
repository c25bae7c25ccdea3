package component

import (
	"fmt"
	"sort"
)

// Registry holds the declaration-time universe: capabilities, concrete types,
// and components. Registration happens during setup; lookups afterwards are
// read-only, so concurrent validations need no coordination.
type Registry struct {
	capabilities map[string]Capability
	types        map[string]TypeInfo
	components   map[string]Component
}

// NewRegistry returns an empty registry with the well-known properties
// capability pre-registered.
func NewRegistry() *Registry {
	r := &Registry{
		capabilities: make(map[string]Capability),
		types:        make(map[string]TypeInfo),
		components:   make(map[string]Component),
	}
	r.capabilities[CapabilityProperties] = Capability{
		Name:        CapabilityProperties,
		Description: "type argument produces a property schema",
	}
	return r
}

// RegisterCapability adds a capability declaration.
func (r *Registry) RegisterCapability(c Capability) error {
	if c.Name == "" {
		return fmt.Errorf("component: capability name is required")
	}
	if _, exists := r.capabilities[c.Name]; exists {
		return fmt.Errorf("%w: capability %q", ErrDuplicateRegistration, c.Name)
	}
	r.capabilities[c.Name] = c
	return nil
}

// RegisterType adds a concrete type argument candidate, visible through the
// registry-backed root scope.
func (r *Registry) RegisterType(info TypeInfo) error {
	if info.Name == "" {
		return fmt.Errorf("component: type name is required")
	}
	if _, exists := r.types[info.Name]; exists {
		return fmt.Errorf("%w: type %q", ErrDuplicateRegistration, info.Name)
	}
	r.types[info.Name] = info
	return nil
}

// RegisterComponent adds a component declaration.
func (r *Registry) RegisterComponent(c Component) error {
	if c.Name == "" {
		return ErrComponentNameRequired
	}
	if _, exists := r.components[c.Name]; exists {
		return fmt.Errorf("%w: component %q", ErrDuplicateRegistration, c.Name)
	}
	r.components[c.Name] = c
	return nil
}

// MustRegisterComponent panics when registration fails.
func (r *Registry) MustRegisterComponent(c Component) {
	if err := r.RegisterComponent(c); err != nil {
		panic(err)
	}
}

// Component looks a component declaration up by name.
func (r *Registry) Component(name string) (Component, bool) {
	c, ok := r.components[name]
	return c, ok
}

// Components lists registered component names, sorted.
func (r *Registry) Components() []string {
	out := make([]string, 0, len(r.components))
	for name := range r.components {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Capability looks a capability declaration up by name.
func (r *Registry) Capability(name string) (Capability, bool) {
	c, ok := r.capabilities[name]
	return c, ok
}

// RootScope returns a scope exposing every registered type. Use-sites nest
// their own scopes inside it to introduce local type arguments.
func (r *Registry) RootScope() *Scope {
	scope := NewScope(nil)
	for _, info := range r.types {
		scope.types[info.Name] = info
	}
	return scope
}
