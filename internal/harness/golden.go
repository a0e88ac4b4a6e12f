package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot is the golden-file representation of one scenario run.
// Field order is fixed by the struct, so the marshalled bytes are
// deterministic.
type TraceSnapshot struct {
	ScenarioName string      `json:"scenario_name"`
	Steps        []StepTrace `json:"steps"`
	FinalClif    string      `json:"final_clif"`
}

// RunWithGolden executes a scenario, requires it to pass, and compares its
// step trace against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if !result.Pass {
		t.Errorf("scenario %q failed: %v", scenario.Name, result.Errors)
	}

	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		Steps:        result.Steps,
		FinalClif:    result.Final,
	}
	data, err := json.MarshalIndent(&snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
