package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/double-cut-roundtrip.yaml")
	require.NoError(t, err)

	assert.Equal(t, "double-cut-roundtrip", s.Name)
	assert.NotEmpty(t, s.Description)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, OpAddPredicate, s.Steps[0].Op)
	assert.Equal(t, "cat", s.Steps[0].Label)
	assert.Equal(t, "(exists (x1) (cat x1))", s.ExpectClif)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenarioFile(t, `
name: typo
description: an unknown field must be rejected
step:
  - op: add_cut
    parent: sa
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps:\n  - op: add_cut\n    parent: sa\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps:\n  - op: add_cut\n    parent: sa\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "unknown op",
			content: "name: n\ndescription: d\nsteps:\n  - op: frobnicate\n",
			wantErr: "unknown op",
		},
		{
			name:    "add_cut without parent",
			content: "name: n\ndescription: d\nsteps:\n  - op: add_cut\n",
			wantErr: "parent is required",
		},
		{
			name:    "add_predicate without label",
			content: "name: n\ndescription: d\nsteps:\n  - op: add_predicate\n    parent: sa\n",
			wantErr: "label is required",
		},
		{
			name:    "bad predicate kind",
			content: "name: n\ndescription: d\nsteps:\n  - op: add_predicate\n    parent: sa\n    label: p\n    kind: gadget\n",
			wantErr: "unknown predicate kind",
		},
		{
			name:    "connect without hooks",
			content: "name: n\ndescription: d\nsteps:\n  - op: connect\n",
			wantErr: "hooks list is required",
		},
		{
			name:    "erase without selection",
			content: "name: n\ndescription: d\nsteps:\n  - op: erase\n",
			wantErr: "selection is required",
		},
		{
			name:    "iterate without target",
			content: "name: n\ndescription: d\nsteps:\n  - op: iterate\n    selection: [p]\n",
			wantErr: "target is required",
		},
		{
			name:    "parse without clif",
			content: "name: n\ndescription: d\nsteps:\n  - op: parse\n",
			wantErr: "clif is required",
		},
		{
			name:    "reserved name",
			content: "name: n\ndescription: d\nsteps:\n  - op: add_cut\n    parent: sa\n    as: sa\n",
			wantErr: "reserved name",
		},
		{
			name:    "bad assertion type",
			content: "name: n\ndescription: d\nsteps:\n  - op: add_cut\n    parent: sa\nassertions:\n  - type: state_query\n",
			wantErr: "unknown assertion type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenarioFile(t, tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
