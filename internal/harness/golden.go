package harness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/dantswain/nushell/internal/value"
)

// Snapshot captures a scenario outcome for golden comparison.
// The result uses canonical JSON so snapshots are byte-stable.
type Snapshot struct {
	Name   string          `json:"name"`
	Source string          `json:"source"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// RunWithGolden executes a scenario and compares its outcome against a
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) {
	t.Helper()

	result, err := Run(context.Background(), s)
	require.NoError(t, err, "scenario %s failed to run", s.Name)

	snapshot := Snapshot{
		Name:   s.Name,
		Source: s.Source,
	}
	if result.Err != nil {
		snapshot.Error = result.Err.Error()
	} else {
		resultJSON, err := value.MarshalCanonical(result.Value)
		require.NoError(t, err, "scenario %s result is not serializable", s.Name)
		snapshot.Result = resultJSON
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	require.NoError(t, err)
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, data)
}
