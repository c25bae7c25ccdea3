package report

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// TemplateRenderer is the seam between the reporter and its template engine.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
	RenderString(content string, data map[string]any) (string, error)
}

// Engine is a pongo2-backed TemplateRenderer loading templates from an fs.FS.
type Engine struct {
	mu          sync.RWMutex
	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	extension   string
}

var _ TemplateRenderer = (*Engine)(nil)

// NewEngine constructs an Engine over the given template filesystem.
func NewEngine(files fs.FS) (*Engine, error) {
	if files == nil {
		return nil, errors.New("report: template filesystem is required")
	}
	return &Engine{
		templateSet: pongo2.NewSet("report", pongo2.NewFSLoader(files)),
		templates:   make(map[string]*pongo2.Template),
		extension:   ".tpl",
	}, nil
}

// RenderTemplate renders a named template. The configured extension is
// appended when the name does not already carry it.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}
	return execute(tmpl, path, data)
}

// RenderString parses and renders inline template content.
func (e *Engine) RenderString(content string, data map[string]any) (string, error) {
	tmpl, err := e.templateSet.FromString(content)
	if err != nil {
		return "", fmt.Errorf("report: parse template string: %w", err)
	}
	return execute(tmpl, "<string>", data)
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func execute(tmpl *pongo2.Template, path string, data map[string]any) (string, error) {
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = value
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("report: execute template %q: %w", path, err)
	}
	return buf.String(), nil
}
