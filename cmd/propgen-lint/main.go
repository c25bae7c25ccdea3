package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-propgen/pkg/component"
	"github.com/goliatone/go-propgen/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-propgen/pkg/openapi"
	"github.com/goliatone/go-propgen/pkg/orchestrator"
)

// propgen-lint checks that every component declared in the given manifests
// validates with its default type arguments: bounds hold, defaults resolve,
// and base schemas merge cleanly with contributed ones.
func main() {
	source := flag.String("source", "", "OpenAPI document path or URL to import schemas from")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("usage: propgen-lint [-source openapi.yaml] manifest.yaml [manifest.hcl ...]")
	}

	ctx := context.Background()
	gen := orchestrator.New()

	for _, path := range paths {
		m, err := loadManifest(path)
		if err != nil {
			log.Fatalf("Failed to load manifest %s: %v", path, err)
		}
		if err := gen.ApplyManifest(m); err != nil {
			log.Fatalf("Failed to apply manifest %s: %v", path, err)
		}
	}

	if src := parseSource(*source); src != nil {
		if err := gen.ImportSchemas(ctx, src); err != nil {
			log.Fatalf("Failed to import schemas: %v", err)
		}
	}

	registry := gen.Registry()
	scope := registry.RootScope()

	failures := 0
	for _, name := range registry.Components() {
		decl, _ := registry.Component(name)
		if _, err := registry.Validate(decl, nil, scope); err != nil {
			// A parameter without a declared default has nothing to check
			// outside a concrete use-site.
			var missingArg *component.MissingTypeArgumentError
			if errors.As(err, &missingArg) && missingArg.Default == "" {
				fmt.Printf("%s: skipped (parameter %q has no default)\n", name, missingArg.Param)
				continue
			}
			failures++
			rendered, renderErr := gen.Report(err)
			if renderErr != nil {
				rendered = err.Error() + "\n"
			}
			fmt.Fprintf(os.Stderr, "%s:\n%s", name, indent(rendered))
			continue
		}
		fmt.Printf("%s: ok\n", name)
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func loadManifest(path string) (*manifest.Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return manifest.DecodeHCL(filepath.Base(path), raw)
	default:
		return manifest.DecodeYAML(raw)
	}
}

func parseSource(raw string) pkgopenapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path)
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
