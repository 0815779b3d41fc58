package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantswain/nushell/internal/value"
)

func TestScenarioSuite(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			Assert(t, s)
		})
	}
}

func TestGoldenSnapshots(t *testing.T) {
	for _, name := range []string{"sum", "fold-string"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)
			RunWithGolden(t, s)
		})
	}
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: bad\nsource: '1'\nexpects:\n  result: 1\n"), 0o644))

	_, err := LoadScenario(path)
	assert.Error(t, err, "typoed field names must not be silently ignored")
}

func TestLoadScenarioRequiresNameAndSource(t *testing.T) {
	dir := t.TempDir()

	noName := filepath.Join(dir, "noname.yaml")
	require.NoError(t, os.WriteFile(noName, []byte("source: '1'\n"), 0o644))
	_, err := LoadScenario(noName)
	assert.Error(t, err)

	noSource := filepath.Join(dir, "nosource.yaml")
	require.NoError(t, os.WriteFile(noSource, []byte("name: x\n"), 0o644))
	_, err = LoadScenario(noSource)
	assert.Error(t, err)
}

func TestRunReturnsEvaluationErrorInResult(t *testing.T) {
	s := &Scenario{
		Name:   "empty",
		Source: "reduce {|it, acc| $it + $acc}",
	}
	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.Error(t, result.Err)
	assert.Nil(t, result.Value)
}

func TestRunConvertsInput(t *testing.T) {
	s := &Scenario{
		Name:   "mixed",
		Input:  []any{1, "two", true},
		Source: "reduce -f 0 { 7 }",
	}
	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	require.NoError(t, result.Err)
	assert.True(t, value.Equal(value.NewInt(7, value.TestSpan()), result.Value))
}

func TestRunRejectsFloatInput(t *testing.T) {
	s := &Scenario{
		Name:   "floaty",
		Input:  []any{1.5},
		Source: "reduce { 1 }",
	}
	_, err := Run(context.Background(), s)
	assert.Error(t, err)
}
