package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its effect trace against
// a golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are plain text, one numbered effect per line, so a diff
// reads like the trace itself.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, []byte(renderTrace(scenario.Name, result.Effects)))

	return result, nil
}

// renderTrace formats the effect trace for golden comparison.
func renderTrace(name string, effects []string) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "scenario: %s\n", name)
	for i, effect := range effects {
		fmt.Fprintf(&buf, "%3d %s\n", i+1, effect)
	}
	return buf.String()
}
