package commands

import (
	"context"
	"strings"

	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// StrReplace replaces occurrences of a pattern in string input.
// Without --all only the first occurrence is replaced. A list input is
// mapped element-wise; every element must be a string.
type StrReplace struct{}

// Name implements engine.Command.
func (StrReplace) Name() string {
	return "str replace"
}

// Signature implements engine.Command.
func (StrReplace) Signature() *engine.Signature {
	return engine.NewSignature("str replace").
		Required("find", engine.ShapeString, "the pattern to find").
		Required("replace", engine.ShapeString, "the replacement string").
		Switch("all", "replace all occurrences of the pattern", "a")
}

// Usage implements engine.Command.
func (StrReplace) Usage() string {
	return "Find and replace text."
}

// SearchTerms implements engine.Command.
func (StrReplace) SearchTerms() []string {
	return []string{"substitute", "regex", "sub"}
}

// Examples implements engine.Command.
func (StrReplace) Examples() []engine.Example {
	span := value.TestSpan()
	return []engine.Example{
		{
			Example:     `"nushell" | str replace u X`,
			Description: "Replace the first occurrence of a pattern",
			Result:      value.NewString("nXshell", span),
		},
		{
			Example:     `"abcabc" | str replace -a b Z`,
			Description: "Replace all occurrences of a pattern",
			Result:      value.NewString("aZcaZc", span),
		},
	}
}

// Run implements engine.Command.
func (StrReplace) Run(ctx context.Context, state *engine.EngineState, stack *engine.Stack, call *engine.Call, input pipeline.Data) (pipeline.Data, error) {
	span := call.Head

	findVal, err := call.ReqPositional("str replace", "a pattern", 0)
	if err != nil {
		return pipeline.Data{}, err
	}
	find, ok := findVal.(value.String)
	if !ok {
		return pipeline.Data{}, engine.NewTypeMismatchError("string", findVal)
	}

	replaceVal, err := call.ReqPositional("str replace", "a replacement", 1)
	if err != nil {
		return pipeline.Data{}, err
	}
	replace, ok := replaceVal.(value.String)
	if !ok {
		return pipeline.Data{}, engine.NewTypeMismatchError("string", replaceVal)
	}

	limit := 1
	if call.HasFlag("all") {
		limit = -1
	}

	apply := func(v value.Value) (value.Value, error) {
		s, ok := v.(value.String)
		if !ok {
			return nil, engine.NewTypeMismatchError("string", v)
		}
		return value.NewString(strings.Replace(s.Val, find.Val, replace.Val, limit), span), nil
	}

	in := input.IntoValue(span)
	if list, ok := in.(value.List); ok {
		vals := make([]value.Value, len(list.Vals))
		for i, elem := range list.Vals {
			out, err := apply(elem)
			if err != nil {
				return pipeline.Data{}, err
			}
			vals[i] = out
		}
		return pipeline.FromValue(value.NewList(vals, span)), nil
	}

	out, err := apply(in)
	if err != nil {
		return pipeline.Data{}, err
	}
	return pipeline.FromValue(out), nil
}
