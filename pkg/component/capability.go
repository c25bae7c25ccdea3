package component

import "github.com/goliatone/go-propgen/pkg/schema"

// CapabilityProperties is the well-known capability marking a type argument
// that produces a property schema. Satisfying it structurally requires the
// type to carry a schema, not just to list the name.
const CapabilityProperties = "properties"

// Capability is a named requirement a type argument can satisfy. Requires
// lists further capabilities that satisfying this one pulls in; the chain is
// reported when a derived requirement fails.
type Capability struct {
	Name        string
	Description string
	Requires    []string
}

// TypeInfo describes a concrete type argument candidate: the capabilities it
// implements directly and, for schema-producing types, the property schema it
// contributes to the binding.
type TypeInfo struct {
	Name         string
	Capabilities []string
	Schema       *schema.PropertySchema
}

func (t TypeInfo) lists(capability string) bool {
	for _, name := range t.Capabilities {
		if name == capability {
			return true
		}
	}
	return false
}
