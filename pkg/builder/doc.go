// Package builder implements the staged construction of property bags. A
// builder chain is a sequence of single-use states; each state knows which
// required fields are still missing, and only a state with an empty checklist
// can finalize into a Bag. States are linear: Set and Build consume the
// receiver, and reusing a consumed state is a programmer error reported as
// StateConsumedError, distinct from the schema-level rejections.
package builder
