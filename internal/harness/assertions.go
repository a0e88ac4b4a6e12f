package harness

import (
	"fmt"

	"github.com/roach88/peirce/internal/clif"
	"github.com/roach88/peirce/internal/editor"
)

// EvaluateAssertions checks each assertion against the final graph and
// returns a message per failure. An empty slice means all assertions held.
func EvaluateAssertions(ed *editor.Editor, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		switch a.Type {
		case AssertClifEquals:
			if got := clif.Translate(ed.Graph()); got != a.Value {
				failures = append(failures, fmt.Sprintf(
					"assertions[%d] clif_equals: expected %q, got %q", i, a.Value, got))
			}
		case AssertEntityCount:
			if got := ed.Graph().Len(); got != a.Count {
				failures = append(failures, fmt.Sprintf(
					"assertions[%d] entity_count: expected %d, got %d", i, a.Count, got))
			}
		default:
			failures = append(failures, fmt.Sprintf(
				"assertions[%d]: unknown assertion type %q", i, a.Type))
		}
	}
	return failures
}
