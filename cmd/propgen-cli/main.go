package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/goliatone/go-propgen/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-propgen/pkg/openapi"
	"github.com/goliatone/go-propgen/pkg/orchestrator"
	"github.com/goliatone/go-propgen/pkg/prompt"
)

type kvFlag struct {
	pairs map[string]string
}

func (f *kvFlag) String() string {
	if len(f.pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.pairs))
	for k, v := range f.pairs {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (f *kvFlag) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	if f.pairs == nil {
		f.pairs = make(map[string]string)
	}
	f.pairs[strings.TrimSpace(key)] = value
	return nil
}

type listFlag []string

func (f *listFlag) String() string { return strings.Join(*f, ",") }

func (f *listFlag) Set(raw string) error {
	*f = append(*f, raw)
	return nil
}

func main() {
	var (
		manifests listFlag
		sets      kvFlag
		typeArgs  kvFlag
	)
	flag.Var(&manifests, "manifest", "component manifest path (.yaml or .hcl), repeatable")
	source := flag.String("source", "", "OpenAPI document path or URL to import schemas from")
	componentName := flag.String("component", "", "component to instantiate")
	flag.Var(&sets, "set", "field assignment name=value, repeatable")
	flag.Var(&typeArgs, "type-arg", "type argument binding Param=Type, repeatable")
	interactive := flag.Bool("interactive", false, "prompt for missing required fields")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *componentName == "" {
		log.Fatal("a -component is required")
	}

	ctx := context.Background()

	var options []orchestrator.Option
	if *interactive {
		options = append(options, orchestrator.WithPromptDriver(prompt.NewSurveyDriver()))
	}
	gen := orchestrator.New(options...)

	for _, path := range manifests {
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

	values := make(map[string]cty.Value, len(sets.pairs))
	for name, raw := range sets.pairs {
		values[name] = parseValue(raw)
	}

	result, err := gen.Instantiate(ctx, orchestrator.Request{
		Component:   *componentName,
		TypeArgs:    typeArgs.pairs,
		Values:      values,
		Interactive: *interactive,
	})
	if err != nil {
		rendered, renderErr := gen.Report(err)
		if renderErr != nil {
			log.Fatalf("Failed to instantiate component: %v", err)
		}
		fmt.Fprint(os.Stderr, rendered)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(result.Bag, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode bag: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Properties written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
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

// parseValue decodes JSON-looking input into its implied cty value so numbers,
// bools, lists, and objects survive the command line; everything else is a
// plain string and the builder's conversion handles the rest.
func parseValue(raw string) cty.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && strings.ContainsAny(string(trimmed[0]), `[{"0123456789-tf`) {
		ty, err := ctyjson.ImpliedType([]byte(trimmed))
		if err == nil {
			if value, err := ctyjson.Unmarshal([]byte(trimmed), ty); err == nil {
				return value
			}
		}
	}
	return cty.StringVal(raw)
}
