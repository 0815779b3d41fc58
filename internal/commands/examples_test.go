package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/value"
)

// TestCommandExamples evaluates every documented example end to end and
// checks the documented result.
func TestCommandExamples(t *testing.T) {
	cmds := []engine.Command{Reduce{}, StrReplace{}, StrLength{}}

	for _, cmd := range cmds {
		for _, example := range cmd.Examples() {
			t.Run(cmd.Name()+"/"+example.Description, func(t *testing.T) {
				require.NotNil(t, example.Result, "examples must document a result")

				got, err := evalSource(t, example.Example)
				require.NoError(t, err)
				assert.True(t, value.Equal(example.Result, got),
					"example %q: expected %s, got %s",
					example.Example, value.Format(example.Result), value.Format(got))
			})
		}
	}
}

func TestCommandMetadata(t *testing.T) {
	cmds := []engine.Command{Reduce{}, StrReplace{}, StrLength{}}

	for _, cmd := range cmds {
		t.Run(cmd.Name(), func(t *testing.T) {
			assert.NotEmpty(t, cmd.Usage())
			assert.NotEmpty(t, cmd.SearchTerms())
			assert.Equal(t, cmd.Name(), cmd.Signature().Name)
		})
	}
}

func TestNewEngineStateRegistersBuiltins(t *testing.T) {
	state := NewEngineState()
	for _, name := range []string{"reduce", "str replace", "str length"} {
		assert.True(t, state.HasCommand(name), "missing %q", name)
	}
}
