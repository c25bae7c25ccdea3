package component

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrComponentNameRequired rejects registering an unnamed component.
	ErrComponentNameRequired = errors.New("component: component name is required")

	// ErrDuplicateRegistration rejects registering the same name twice.
	ErrDuplicateRegistration = errors.New("component: duplicate registration")

	// ErrUnknownComponent reports a lookup for an unregistered component.
	ErrUnknownComponent = errors.New("component: unknown component")
)

// MissingTypeArgumentError rejects a use-site that omits a required type
// parameter. Default carries the declared fallback, when one exists, so the
// report can offer it as the fix.
type MissingTypeArgumentError struct {
	Component string
	Param     string
	Default   string
}

func (e *MissingTypeArgumentError) Error() string {
	msg := fmt.Sprintf("component %q: missing type argument for parameter %q", e.Component, e.Param)
	if e.Default != "" {
		msg += fmt.Sprintf(" (declared default %q is available)", e.Default)
	}
	return msg
}

// UnsatisfiedBoundError rejects a type argument that fails a capability
// bound. Trail is the derivation chain from the declared bound to the
// requirement that failed, inclusive at both ends.
type UnsatisfiedBoundError struct {
	Component string
	Param     string
	TypeName  string
	Bound     string
	Trail     []string
}

func (e *UnsatisfiedBoundError) Error() string {
	msg := fmt.Sprintf("component %q: type %q does not satisfy bound %q for parameter %q",
		e.Component, e.TypeName, e.Bound, e.Param)
	if len(e.Trail) > 1 {
		msg += fmt.Sprintf(" (required via %s)", strings.Join(e.Trail, " -> "))
	}
	return msg
}

// UnresolvedTypeNameError rejects a type argument naming a type not declared
// in any enclosing scope.
type UnresolvedTypeNameError struct {
	Component string
	Param     string
	TypeName  string
}

func (e *UnresolvedTypeNameError) Error() string {
	return fmt.Sprintf("component %q: type name %q for parameter %q is not declared in any enclosing scope; it may need to be introduced as a type parameter",
		e.Component, e.TypeName, e.Param)
}

// UnknownCapabilityError reports a bound or requirement naming a capability
// that was never registered. This is a declaration defect, not a use-site one.
type UnknownCapabilityError struct {
	Name string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("component: unknown capability %q", e.Name)
}
