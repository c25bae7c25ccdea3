// Package schema defines the property schema consumed by the staged builder:
// an ordered, immutable set of field specs where each field is either required
// or carries a default-value provider. Schemas are declaration-time artifacts;
// once constructed they never change, so builder chains and concurrent
// instantiations can share them freely.
package schema
