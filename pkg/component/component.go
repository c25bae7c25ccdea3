package component

import "github.com/goliatone/go-propgen/pkg/schema"

// TypeParam declares one type parameter of a polymorphic component.
type TypeParam struct {
	// Name identifies the parameter at use-sites.
	Name string

	// Bounds lists capability names every argument must satisfy.
	Bounds []string

	// Default optionally names the type argument used when a use-site omits
	// this parameter. Resolved through the use-site scope at validation time.
	Default string
}

// Component is a declaration-time artifact: a named, possibly polymorphic
// component with a base property schema. Non-generic components simply have
// no type parameters.
type Component struct {
	Name        string
	Description string
	TypeParams  []TypeParam
	Schema      *schema.PropertySchema
}
