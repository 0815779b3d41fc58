package commands

import (
	"context"
	"unicode/utf8"

	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// StrLength returns the length of string input in Unicode code points.
// A list input is mapped element-wise.
type StrLength struct{}

// Name implements engine.Command.
func (StrLength) Name() string {
	return "str length"
}

// Signature implements engine.Command.
func (StrLength) Signature() *engine.Signature {
	return engine.NewSignature("str length")
}

// Usage implements engine.Command.
func (StrLength) Usage() string {
	return "Output the length of any strings in the pipeline."
}

// SearchTerms implements engine.Command.
func (StrLength) SearchTerms() []string {
	return []string{"size", "count"}
}

// Examples implements engine.Command.
func (StrLength) Examples() []engine.Example {
	span := value.TestSpan()
	return []engine.Example{
		{
			Example:     `"hello" | str length`,
			Description: "Return the length of a string",
			Result:      value.NewInt(5, span),
		},
	}
}

// Run implements engine.Command.
func (StrLength) Run(ctx context.Context, state *engine.EngineState, stack *engine.Stack, call *engine.Call, input pipeline.Data) (pipeline.Data, error) {
	span := call.Head

	apply := func(v value.Value) (value.Value, error) {
		s, ok := v.(value.String)
		if !ok {
			return nil, engine.NewTypeMismatchError("string", v)
		}
		return value.NewInt(int64(utf8.RuneCountInString(s.Val)), span), nil
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
