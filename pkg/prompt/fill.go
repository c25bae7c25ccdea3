package prompt

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/goliatone/go-propgen/pkg/builder"
	"github.com/goliatone/go-propgen/pkg/schema"
)

// Fill walks the builder checklist and prompts for every required field still
// missing, in sorted order. Bool fields become confirm prompts; everything
// else is collected as text and converted to the field's declared type, with
// collection and object types parsed as JSON. The returned state is terminal
// when every prompt succeeded.
func Fill(ctx context.Context, driver PromptDriver, state *builder.State) (*builder.State, error) {
	missing := state.Missing()
	if len(missing) == 0 {
		return state, nil
	}

	if err := driver.Info(ctx, fmt.Sprintf("%d required field(s) to fill", len(missing))); err != nil {
		return nil, err
	}

	current := state
	for _, name := range missing {
		spec, ok := current.Schema().Field(name)
		if !ok {
			return nil, fmt.Errorf("prompt: checklist names unknown field %q", name)
		}

		value, err := ask(ctx, driver, spec.Name, spec)
		if err != nil {
			return nil, err
		}

		next, err := current.Set(name, value)
		if err != nil {
			return nil, fmt.Errorf("prompt: assign field %q: %w", name, err)
		}
		current = next
	}

	return current, nil
}

func ask(ctx context.Context, driver PromptDriver, name string, spec schema.FieldSpec) (cty.Value, error) {
	message := spec.Label
	if message == "" {
		message = name
	}

	if spec.Type.Equals(cty.Bool) {
		answer, err := driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Help:    spec.Description,
		})
		if err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(answer), nil
	}

	cfg := InputConfig{
		Message: message,
		Help:    spec.Description,
	}
	if !spec.Type.IsPrimitiveType() {
		cfg.Help = joinHelp(spec.Description, fmt.Sprintf("enter a JSON value of type %s", spec.Type.FriendlyName()))
	}
	cfg.Validator = func(raw string) error {
		_, err := valueFromText(raw, spec.Type)
		return err
	}

	raw, err := driver.Input(ctx, cfg)
	if err != nil {
		return cty.NilVal, err
	}
	return valueFromText(raw, spec.Type)
}

func valueFromText(raw string, ty cty.Type) (cty.Value, error) {
	if ty.IsPrimitiveType() {
		value, err := convert.Convert(cty.StringVal(raw), ty)
		if err != nil {
			return cty.NilVal, fmt.Errorf("prompt: %q is not a valid %s", raw, ty.FriendlyName())
		}
		return value, nil
	}

	value, err := ctyjson.Unmarshal([]byte(raw), ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("prompt: parse %s value: %w", ty.FriendlyName(), err)
	}
	return value, nil
}

func joinHelp(parts ...string) string {
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += part
	}
	return out
}
