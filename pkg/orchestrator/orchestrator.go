package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/goliatone/go-propgen/internal/ctxlog"
	internalopenapi "github.com/goliatone/go-propgen/internal/openapi"
	"github.com/goliatone/go-propgen/pkg/builder"
	"github.com/goliatone/go-propgen/pkg/component"
	"github.com/goliatone/go-propgen/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-propgen/pkg/openapi"
	"github.com/goliatone/go-propgen/pkg/prompt"
	"github.com/goliatone/go-propgen/pkg/report"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a pre-populated component registry.
func WithRegistry(registry *component.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithReporter injects a custom rejection reporter.
func WithReporter(reporter *report.Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = reporter
	}
}

// WithPromptDriver injects the driver used for interactive fills.
func WithPromptDriver(driver prompt.PromptDriver) Option {
	return func(o *Orchestrator) {
		o.driver = driver
	}
}

// Orchestrator wires declaration sources, the component registry, the staged
// builder, and the reporter behind one entry point. Missing dependencies are
// initialised with the built-in implementations so callers can start with a
// single constructor call.
type Orchestrator struct {
	registry *component.Registry
	loader   pkgopenapi.Loader
	parser   pkgopenapi.Parser
	reporter *report.Reporter
	driver   prompt.PromptDriver

	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.registry == nil {
		o.registry = component.NewRegistry()
	}
	if o.loader == nil {
		o.loader = internalopenapi.NewLoader(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalopenapi.NewParser(pkgopenapi.NewParserOptions())
	}
	if o.reporter == nil {
		reporter, err := report.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default reporter: %w", err)
		}
		o.reporter = reporter
	}

	return o
}

// Registry exposes the registry so callers can register declarations directly.
func (o *Orchestrator) Registry() *component.Registry {
	return o.registry
}

// ApplyManifest registers every declaration in the manifest.
func (o *Orchestrator) ApplyManifest(m *manifest.Manifest) error {
	if m == nil {
		return errors.New("orchestrator: manifest is nil")
	}
	return m.Apply(o.registry)
}

// ImportSchemas loads an OpenAPI document and registers each derived property
// schema as a concrete type carrying the properties capability, so component
// type parameters can bind to it.
func (o *Orchestrator) ImportSchemas(ctx context.Context, src pkgopenapi.Source) error {
	if err := o.initialiseErr; err != nil {
		return err
	}

	logger := ctxlog.FromContext(ctx)

	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("orchestrator: load document: %w", err)
	}

	schemas, err := o.parser.Schemas(ctx, doc)
	if err != nil {
		return fmt.Errorf("orchestrator: parse schemas: %w", err)
	}

	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := component.TypeInfo{
			Name:         name,
			Capabilities: []string{component.CapabilityProperties},
			Schema:       schemas[name],
		}
		if err := o.registry.RegisterType(info); err != nil {
			return fmt.Errorf("orchestrator: import schema %q: %w", name, err)
		}
		logger.Debug("imported schema as type", "type", name, "source", doc.Location())
	}

	return nil
}

// Request describes one component instantiation.
type Request struct {
	// Component names the registered component to instantiate.
	Component string

	// TypeArgs binds type parameters to type names, resolved through Scope.
	TypeArgs map[string]string

	// Values assigns property fields.
	Values map[string]cty.Value

	// Scope resolves type names. Defaults to the registry root scope.
	Scope *component.Scope

	// Interactive prompts for required fields the Values map leaves missing.
	// Requires a prompt driver.
	Interactive bool
}

// Result carries the validated binding and the finalized bag.
type Result struct {
	Binding *component.Binding
	Bag     *builder.Bag
}

// Instantiate validates the component's type arguments, walks the staged
// builder with the supplied values, optionally prompts for what is still
// missing, and finalizes the bag. Rejections come back as the structured
// error types from the builder and component packages.
func (o *Orchestrator) Instantiate(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Component == "" {
		return nil, errors.New("orchestrator: component name is required")
	}

	logger := ctxlog.FromContext(ctx)

	decl, ok := o.registry.Component(req.Component)
	if !ok {
		return nil, fmt.Errorf("%w: %q", component.ErrUnknownComponent, req.Component)
	}

	scope := req.Scope
	if scope == nil {
		scope = o.registry.RootScope()
	}

	binding, err := o.registry.Validate(decl, req.TypeArgs, scope)
	if err != nil {
		return nil, err
	}
	logger.Debug("component validated", "component", req.Component)

	state := binding.Start()

	names := make([]string, 0, len(req.Values))
	for name := range req.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		state, err = state.Set(name, req.Values[name])
		if err != nil {
			return nil, err
		}
	}

	if req.Interactive && !state.Terminal() {
		if o.driver == nil {
			return nil, errors.New("orchestrator: interactive request without a prompt driver")
		}
		state, err = prompt.Fill(ctx, o.driver, state)
		if err != nil {
			return nil, err
		}
	}

	bag, err := state.Build()
	if err != nil {
		return nil, err
	}
	logger.Debug("bag built", "component", req.Component, "fields", bag.Len())

	return &Result{Binding: binding, Bag: bag}, nil
}

// Report renders a rejection error into a human-readable diagnostic.
func (o *Orchestrator) Report(err error) (string, error) {
	if o.reporter == nil {
		return "", errors.New("orchestrator: reporter is nil")
	}
	return o.reporter.Render(err)
}
