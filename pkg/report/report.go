package report

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-propgen/pkg/builder"
	"github.com/goliatone/go-propgen/pkg/component"
)

//go:embed templates/*.tpl
var defaultTemplates embed.FS

// Option configures a Reporter.
type Option func(*Reporter)

// WithEngine replaces the default embedded-template engine.
func WithEngine(engine TemplateRenderer) Option {
	return func(r *Reporter) {
		r.engine = engine
	}
}

// WithTemplatesFS renders from the given filesystem instead of the embedded
// defaults. Template names stay the same, so a partial override filesystem
// must carry every template it shadows.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Reporter) {
		r.templates = files
	}
}

// WithThemeSelector resolves the named theme and variant before rendering and
// exposes the selection's tokens to every template.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Reporter) {
		r.selector = selector
		r.themeName = name
		r.themeVariant = variant
	}
}

// Reporter turns rejection errors into rendered diagnostics.
type Reporter struct {
	engine    TemplateRenderer
	templates fs.FS

	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// New constructs a Reporter. Without options it renders the embedded
// templates with no theme context.
func New(options ...Option) (*Reporter, error) {
	r := &Reporter{}
	for _, opt := range options {
		opt(r)
	}

	if r.engine == nil {
		files := r.templates
		if files == nil {
			sub, err := fs.Sub(defaultTemplates, "templates")
			if err != nil {
				return nil, fmt.Errorf("report: embedded templates: %w", err)
			}
			files = sub
		}
		engine, err := NewEngine(files)
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}

	return r, nil
}

// Render maps err onto its template and renders it. Errors that are not one
// of the known rejection kinds fall through to the generic template.
func (r *Reporter) Render(err error) (string, error) {
	if err == nil {
		return "", errors.New("report: nil error")
	}

	name, data := classify(err)

	themeCtx, themeErr := r.themeContext()
	if themeErr != nil {
		return "", themeErr
	}
	data["theme"] = themeCtx

	return r.engine.RenderTemplate(name, data)
}

func (r *Reporter) themeContext() (map[string]any, error) {
	if r.selector == nil {
		return map[string]any{}, nil
	}
	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("report: select theme %q: %w", r.themeName, err)
	}
	ctx := map[string]any{
		"name":    selection.Theme,
		"variant": selection.Variant,
	}
	if selection.Manifest != nil {
		ctx["tokens"] = selection.Manifest.Tokens
	}
	return ctx, nil
}

func classify(err error) (string, map[string]any) {
	var (
		missingFields *builder.MissingRequiredFieldsError
		unknownField  *builder.UnknownFieldError
		typeMismatch  *builder.TypeMismatchError
		consumed      *builder.StateConsumedError

		missingArg   *component.MissingTypeArgumentError
		unsatisfied  *component.UnsatisfiedBoundError
		unresolved   *component.UnresolvedTypeNameError
		unknownCap   *component.UnknownCapabilityError
	)

	switch {
	case errors.As(err, &missingFields):
		return "missing_required", map[string]any{
			"missing": missingFields.Missing,
		}
	case errors.As(err, &unknownField):
		return "unknown_field", map[string]any{
			"field": unknownField.Field,
		}
	case errors.As(err, &typeMismatch):
		return "type_mismatch", map[string]any{
			"field": typeMismatch.Field,
			"want":  typeMismatch.Want.FriendlyName(),
			"got":   typeMismatch.Got.FriendlyName(),
		}
	case errors.As(err, &consumed):
		return "state_consumed", map[string]any{}
	case errors.As(err, &missingArg):
		return "missing_type_argument", map[string]any{
			"component": missingArg.Component,
			"param":     missingArg.Param,
			"fallback":  missingArg.Default,
		}
	case errors.As(err, &unsatisfied):
		return "unsatisfied_bound", map[string]any{
			"component": unsatisfied.Component,
			"param":     unsatisfied.Param,
			"type_name": unsatisfied.TypeName,
			"bound":     unsatisfied.Bound,
			"trail":     unsatisfied.Trail,
			"derived":   len(unsatisfied.Trail) > 1,
		}
	case errors.As(err, &unresolved):
		return "unresolved_type_name", map[string]any{
			"component": unresolved.Component,
			"param":     unresolved.Param,
			"type_name": unresolved.TypeName,
		}
	case errors.As(err, &unknownCap):
		return "unknown_capability", map[string]any{
			"capability": unknownCap.Name,
		}
	default:
		return "generic", map[string]any{
			"message": err.Error(),
		}
	}
}
