// Package propgen exposes the high-level entry points of the module: a
// checklist-driven staged builder for component properties, a capability
// validator for generic component instantiation, and the orchestrator tying
// declaration sources, validation, and reporting together.
package propgen

import (
	"context"

	internalopenapi "github.com/goliatone/go-propgen/internal/openapi"
	"github.com/goliatone/go-propgen/pkg/builder"
	pkgopenapi "github.com/goliatone/go-propgen/pkg/openapi"
	"github.com/goliatone/go-propgen/pkg/orchestrator"
)

// Request mirrors the orchestrator request; alias exported via the root
// package for convenience.
type Request = orchestrator.Request

// Result mirrors the orchestrator result.
type Result = orchestrator.Result

// New constructs an orchestrator with the built-in loader, parser, registry,
// and reporter unless options override them.
func New(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// WithRegistry re-exports the orchestrator option.
var WithRegistry = orchestrator.WithRegistry

// WithLoader re-exports the orchestrator option.
var WithLoader = orchestrator.WithLoader

// WithParser re-exports the orchestrator option.
var WithParser = orchestrator.WithParser

// WithReporter re-exports the orchestrator option.
var WithReporter = orchestrator.WithReporter

// WithPromptDriver re-exports the orchestrator option.
var WithPromptDriver = orchestrator.WithPromptDriver

// BuildBag runs the full instantiation and returns just the finalized bag,
// for callers that do not need the binding.
func BuildBag(ctx context.Context, gen *orchestrator.Orchestrator, req Request) (*builder.Bag, error) {
	result, err := gen.Instantiate(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Bag, nil
}

// NewLoader constructs an OpenAPI loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	return internalopenapi.NewLoader(options)
}

// NewParser constructs an OpenAPI parser backed by the internal
// implementation.
func NewParser(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return internalopenapi.NewParser(options)
}
