// Package harness runs YAML-defined conformance scenarios against the
// evaluator and compares results against expectations or golden files.
package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dantswain/nushell/internal/commands"
	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/lang"
	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// Scenario defines one conformance scenario: a pipeline source, its
// input, and the expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden
	// file when the scenario is run in golden mode.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Input is the pipeline input sequence. Elements use plain YAML
	// values and are converted to shell values before evaluation.
	Input []any `yaml:"input,omitempty"`

	// Source is the pipeline source text to parse and evaluate.
	Source string `yaml:"source"`

	// Expect specifies the expected outcome.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a scenario.
// Exactly one of Result or ErrorCode should be set.
type ExpectClause struct {
	// Result is the expected evaluation result as a plain YAML value.
	Result any `yaml:"result,omitempty"`

	// ErrorCode is the expected shell error code, e.g. "EMPTY_INPUT".
	ErrorCode string `yaml:"error_code,omitempty"`
}

// Result is the outcome of evaluating a scenario.
type Result struct {
	// Value is the evaluation result. Nil when Err is set.
	Value value.Value

	// Err is the evaluation error, if any.
	Err error
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadDir loads all *.yaml scenarios in a directory, sorted by file
// name for deterministic test ordering.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}

	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Source == "" {
		return fmt.Errorf("source is required")
	}
	if s.Expect != nil && s.Expect.Result != nil && s.Expect.ErrorCode != "" {
		return fmt.Errorf("expect sets both result and error_code")
	}
	return nil
}

// Run evaluates a scenario against a fresh engine context. A parse
// failure or an input conversion failure is returned as an error;
// an evaluation failure lands in Result.Err so expectations can
// assert on it.
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	state := commands.NewEngineState()
	stack := engine.NewStack()

	span := value.UnknownSpan()
	input := pipeline.Empty(span)
	if len(s.Input) > 0 {
		vals := make([]value.Value, len(s.Input))
		for i, raw := range s.Input {
			v, err := value.FromGo(raw, span)
			if err != nil {
				return nil, fmt.Errorf("scenario %s input[%d]: %w", s.Name, i, err)
			}
			vals[i] = v
		}
		input = pipeline.FromList(vals, span)
	}

	parsed, err := lang.Parse(state, s.Source)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	out, err := lang.EvalPipeline(ctx, state, stack, parsed, input, true, true)
	if err != nil {
		return &Result{Err: err}, nil
	}

	return &Result{Value: out.IntoValue(span)}, nil
}

// Assert runs a scenario and checks its expectation with testify.
func Assert(t *testing.T, s *Scenario) {
	t.Helper()

	result, err := Run(context.Background(), s)
	require.NoError(t, err, "scenario %s failed to run", s.Name)

	if s.Expect == nil {
		assert.NoError(t, result.Err, "scenario %s returned an error", s.Name)
		return
	}

	if s.Expect.ErrorCode != "" {
		require.Error(t, result.Err, "scenario %s expected error %s", s.Name, s.Expect.ErrorCode)
		var shellErr *engine.ShellError
		require.ErrorAs(t, result.Err, &shellErr, "scenario %s expected a shell error", s.Name)
		assert.Equal(t, engine.ErrorCode(s.Expect.ErrorCode), shellErr.Code)
		return
	}

	require.NoError(t, result.Err, "scenario %s returned an error", s.Name)
	expected, err := value.FromGo(s.Expect.Result, value.UnknownSpan())
	require.NoError(t, err, "scenario %s has an invalid expectation", s.Name)
	assert.True(t, value.Equal(expected, result.Value),
		"scenario %s: expected %s, got %s", s.Name, value.Format(expected), value.Format(result.Value))
}
