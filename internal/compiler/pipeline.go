// Package compiler turns CUE pipeline definitions into runnable specs.
//
// A pipeline definition is a CUE file with a top-level "pipeline"
// struct:
//
//	pipeline: {
//		name:   "sum"
//		input:  [1, 2, 3, 4]
//		source: "reduce {|it, acc| $it + $acc}"
//	}
//
// The compiler uses the CUE SDK's Go API directly (not a CLI
// subprocess), validates the shape, and converts CUE values into shell
// values. Floats and nulls are rejected - the value model has neither.
package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/dantswain/nushell/internal/value"
)

// PipelineSpec is a compiled pipeline definition.
type PipelineSpec struct {
	// Name labels the pipeline in history and logs. Optional.
	Name string

	// Input is the pipeline input sequence.
	Input []value.Value

	// Source is the pipeline source text to parse and evaluate.
	Source string
}

// CompileError is a structured compilation error with the offending
// field and source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("pipeline field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// CompileFile loads and compiles a CUE pipeline definition from disk.
func CompileFile(path string) (*PipelineSpec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline definition: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	pipelineVal := v.LookupPath(cue.ParsePath("pipeline"))
	if !pipelineVal.Exists() {
		return nil, &CompileError{
			Field:   "pipeline",
			Message: "top-level pipeline struct is required",
			Pos:     v.Pos(),
		}
	}

	return CompilePipeline(pipelineVal)
}

// CompilePipeline parses a CUE value into a PipelineSpec.
// The value should be the pipeline struct itself.
func CompilePipeline(v cue.Value) (*PipelineSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &PipelineSpec{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, &CompileError{
				Field:   "name",
				Message: "must be a string",
				Pos:     nameVal.Pos(),
			}
		}
		spec.Name = name
	}

	sourceVal := v.LookupPath(cue.ParsePath("source"))
	if !sourceVal.Exists() {
		return nil, &CompileError{
			Field:   "source",
			Message: "source is required",
			Pos:     v.Pos(),
		}
	}
	source, err := sourceVal.String()
	if err != nil {
		return nil, &CompileError{
			Field:   "source",
			Message: "must be a string",
			Pos:     sourceVal.Pos(),
		}
	}
	spec.Source = source

	inputVal := v.LookupPath(cue.ParsePath("input"))
	if inputVal.Exists() {
		iter, err := inputVal.List()
		if err != nil {
			return nil, &CompileError{
				Field:   "input",
				Message: "must be a list",
				Pos:     inputVal.Pos(),
			}
		}
		for iter.Next() {
			converted, err := convertValue(iter.Value())
			if err != nil {
				return nil, err
			}
			spec.Input = append(spec.Input, converted)
		}
	}

	return spec, nil
}

// convertValue converts a concrete CUE value into a shell value.
// Struct fields convert in declaration order, preserving record field
// order. Floats and nulls are rejected.
func convertValue(v cue.Value) (value.Value, error) {
	span := value.UnknownSpan()

	switch v.Kind() {
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.NewBool(b, span), nil

	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.NewInt(n, span), nil

	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.NewString(s, span), nil

	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var vals []value.Value
		for iter.Next() {
			converted, err := convertValue(iter.Value())
			if err != nil {
				return nil, err
			}
			vals = append(vals, converted)
		}
		return value.NewList(vals, span), nil

	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var cols []string
		var vals []value.Value
		for iter.Next() {
			converted, err := convertValue(iter.Value())
			if err != nil {
				return nil, err
			}
			cols = append(cols, iter.Selector().Unquoted())
			vals = append(vals, converted)
		}
		return value.NewRecord(cols, vals, span), nil

	case cue.NullKind:
		return nil, &CompileError{
			Message: "null is not a shell value",
			Pos:     v.Pos(),
		}

	case cue.FloatKind, cue.NumberKind:
		return nil, &CompileError{
			Message: "floats are not supported in pipeline input",
			Pos:     v.Pos(),
		}

	default:
		return nil, &CompileError{
			Message: fmt.Sprintf("unsupported value kind %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}

// formatCUEError flattens a CUE error list into a single error with
// positions.
func formatCUEError(err error) error {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return err
	}
	if len(list) == 1 {
		return fmt.Errorf("%s: %s", list[0].Position(), list[0].Error())
	}
	msg := ""
	for i, e := range list {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s: %s", e.Position(), e.Error())
	}
	return fmt.Errorf("%s", msg)
}
