// Package component validates generic component instantiation. A component
// declares type parameters with capability bounds; use-sites supply concrete
// type arguments (or rely on declared defaults), and Validate checks every
// argument against its bounds before any builder state is created. Successful
// validation yields a Binding whose bound-specific schema feeds the staged
// builder in pkg/builder.
package component
