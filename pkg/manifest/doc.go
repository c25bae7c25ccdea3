// Package manifest loads component declarations from YAML or HCL documents
// and applies them to a component registry. Both formats decode into the same
// Manifest model, so downstream code never cares which syntax authored a
// declaration.
package manifest
