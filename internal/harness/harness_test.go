package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DoubleCutRoundTrip(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/double-cut-roundtrip.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "(exists (x1) (cat x1))", result.Final)
	require.Len(t, result.Steps, 3)
	assert.Equal(t, "(not (not (exists (x1) (cat x1))))", result.Steps[1].Clif)
}

func TestRun_ExpectedErrorIsAPass(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/erase-polarity.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "err:erasure", result.Steps[3].Result)
}

func TestRun_UnexpectedErrorFails(t *testing.T) {
	s := &Scenario{
		Name:        "unexpected-error",
		Description: "an unexpected op failure must fail the scenario",
		Steps: []Step{
			{Op: OpAddCut, Parent: NameSA, As: "c1"},
			{Op: OpAddPredicate, Label: "p", Parent: "c1", As: "p"},
			{Op: OpErase, Selection: []string{"p"}},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Equal(t, "err:erasure", result.Steps[2].Result)
}

func TestRun_MissingExpectedErrorFails(t *testing.T) {
	s := &Scenario{
		Name:        "missing-expected-error",
		Description: "an op that succeeds against an expect_error must fail the scenario",
		Steps: []Step{
			{Op: OpAddPredicate, Label: "p", Parent: NameSA, As: "p", ExpectError: "erasure"},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "got none")
}

func TestRun_FinalClifMismatchFails(t *testing.T) {
	s := &Scenario{
		Name:        "clif-mismatch",
		Description: "a wrong expected rendering must fail the scenario",
		Steps: []Step{
			{Op: OpAddPredicate, Label: "p", Parent: NameSA},
		},
		ExpectClif: "(q)",
	}
	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Equal(t, "(p)", result.Final)
}

func TestRun_UnknownNameIsAHarnessError(t *testing.T) {
	s := &Scenario{
		Name:        "unknown-name",
		Description: "a reference to an unbound name is a scenario bug",
		Steps: []Step{
			{Op: OpAddCut, Parent: "nowhere"},
		},
	}
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity name")
}

func TestRun_ParseReplacesGraph(t *testing.T) {
	s := &Scenario{
		Name:        "parse-replaces",
		Description: "a parse step swaps in the parsed graph and resets names",
		Steps: []Step{
			{Op: OpAddPredicate, Label: "old", Parent: NameSA},
			{Op: OpParse, Clif: "(not (P))"},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "(not (P))", result.Final)
}

func TestRun_ParseSyntaxErrorTag(t *testing.T) {
	s := &Scenario{
		Name:        "parse-syntax-error",
		Description: "a malformed sentence surfaces its syntax error code",
		Steps: []Step{
			{Op: OpParse, Clif: "(not (P)", ExpectError: "UNBALANCED_PARENS"},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestEvaluateAssertions(t *testing.T) {
	s := &Scenario{
		Name:        "assertions",
		Description: "entity_count and clif_equals assertions",
		Steps: []Step{
			{Op: OpAddPredicate, Label: "p", Parent: NameSA},
		},
		Assertions: []Assertion{
			{Type: AssertClifEquals, Value: "(p)"},
			{Type: AssertEntityCount, Count: 2},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	s.Assertions = []Assertion{{Type: AssertEntityCount, Count: 5}}
	result, err = Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
}
