package component

import (
	"fmt"
	"sort"
)

// Scope is one level of a lexical chain mapping type names to TypeInfo.
// Resolution walks outward through parents, so inner declarations shadow
// outer ones.
type Scope struct {
	parent *Scope
	types  map[string]TypeInfo
}

// NewScope returns an empty scope nested inside parent. A nil parent makes a
// root scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, types: make(map[string]TypeInfo)}
}

// Declare adds a type to this scope level. Redeclaring a name already present
// at the same level is rejected; shadowing an outer declaration is allowed.
func (s *Scope) Declare(info TypeInfo) error {
	if info.Name == "" {
		return fmt.Errorf("component: type name is required")
	}
	if _, exists := s.types[info.Name]; exists {
		return fmt.Errorf("%w: type %q", ErrDuplicateRegistration, info.Name)
	}
	s.types[info.Name] = info
	return nil
}

// MustDeclare panics when Declare fails. Useful for fixtures.
func (s *Scope) MustDeclare(info TypeInfo) *Scope {
	if err := s.Declare(info); err != nil {
		panic(err)
	}
	return s
}

// Resolve looks a type name up through the scope chain.
func (s *Scope) Resolve(name string) (TypeInfo, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if info, ok := scope.types[name]; ok {
			return info, true
		}
	}
	return TypeInfo{}, false
}

// Names lists the type names visible from this scope, sorted. Shadowed outer
// declarations appear once.
func (s *Scope) Names() []string {
	seen := make(map[string]struct{})
	for scope := s; scope != nil; scope = scope.parent {
		for name := range scope.types {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
