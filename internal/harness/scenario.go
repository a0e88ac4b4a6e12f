package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/peirce/internal/eg"
)

// Scenario defines one conformance scenario: a script of editor operations
// plus the expected canonical CLIF rendering of the final graph.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps is the operation script, executed in order.
	Steps []Step `yaml:"steps"`

	// ExpectClif is the expected canonical rendering of the final graph.
	// Empty skips the check.
	ExpectClif string `yaml:"expect_clif,omitempty"`

	// Assertions validate the final graph beyond the CLIF comparison.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is a single editor operation. Entities are referred to by symbolic
// names: "sa" is always the Sheet of Assertion, and an op with an `as`
// field binds its result to the given name for later steps.
type Step struct {
	// Op selects the operation.
	Op string `yaml:"op"`

	// Parent names the containing context (add_cut, add_predicate,
	// insert_double_cut).
	Parent string `yaml:"parent,omitempty"`

	// Label, Arity, and Kind describe the predicate for add_predicate.
	// Kind defaults to "relation".
	Label string `yaml:"label,omitempty"`
	Arity int    `yaml:"arity,omitempty"`
	Kind  string `yaml:"kind,omitempty"`

	// Hooks lists the hooks to join for connect.
	Hooks []HookRef `yaml:"hooks,omitempty"`

	// Selection names the members for erase, iterate, deiterate, and
	// insert_double_cut.
	Selection []string `yaml:"selection,omitempty"`

	// Target names the destination context for iterate.
	Target string `yaml:"target,omitempty"`

	// Outer names the outer cut for remove_double_cut.
	Outer string `yaml:"outer,omitempty"`

	// Clif is the sentence for parse. A parse step replaces the graph
	// under test and resets the symbolic name table to just "sa".
	Clif string `yaml:"clif,omitempty"`

	// As binds the operation's result entity to a symbolic name.
	// AsOuter and AsInner bind the two cuts of insert_double_cut.
	As      string `yaml:"as,omitempty"`
	AsOuter string `yaml:"as_outer,omitempty"`
	AsInner string `yaml:"as_inner,omitempty"`

	// ExpectError, when set, requires the operation to fail with the
	// given tag: a rule name ("erasure", "iteration", ...) or a
	// structural/syntax error code ("MISSING_ENTITY", "BAD_FORM", ...).
	ExpectError string `yaml:"expect_error,omitempty"`
}

// HookRef names one hook of a named predicate.
type HookRef struct {
	Predicate string `yaml:"predicate"`
	Hook      int    `yaml:"hook"`
}

// Assertion validates the final graph.
type Assertion struct {
	// Type selects the assertion:
	// - "clif_equals": the final canonical CLIF equals Value
	// - "entity_count": the graph holds exactly Count entities
	Type string `yaml:"type"`

	// Value is the expected text (clif_equals).
	Value string `yaml:"value,omitempty"`

	// Count is the expected entity count (entity_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertClifEquals  = "clif_equals"
	AssertEntityCount = "entity_count"
)

// Operation name constants.
const (
	OpAddCut          = "add_cut"
	OpAddPredicate    = "add_predicate"
	OpConnect         = "connect"
	OpErase           = "erase"
	OpIterate         = "iterate"
	OpDeiterate       = "deiterate"
	OpInsertDoubleCut = "insert_double_cut"
	OpRemoveDoubleCut = "remove_double_cut"
	OpParse           = "parse"
)

// NameSA is the reserved symbolic name of the Sheet of Assertion.
const NameSA = "sa"

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so a typo in a scenario fails loudly instead of silently
// skipping a check.
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
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateStep validates one step based on its op.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpAddCut:
		if step.Parent == "" {
			return fmt.Errorf("steps[%d]: parent is required for add_cut", index)
		}
	case OpAddPredicate:
		if step.Parent == "" {
			return fmt.Errorf("steps[%d]: parent is required for add_predicate", index)
		}
		if step.Label == "" {
			return fmt.Errorf("steps[%d]: label is required for add_predicate", index)
		}
		if step.Arity < 0 {
			return fmt.Errorf("steps[%d]: arity must be non-negative", index)
		}
		switch eg.Kind(step.Kind) {
		case "", eg.KindRelation, eg.KindFunction, eg.KindConstant:
		default:
			return fmt.Errorf("steps[%d]: unknown predicate kind %q", index, step.Kind)
		}
	case OpConnect:
		if len(step.Hooks) == 0 {
			return fmt.Errorf("steps[%d]: hooks list is required for connect", index)
		}
		for j, h := range step.Hooks {
			if h.Predicate == "" {
				return fmt.Errorf("steps[%d].hooks[%d]: predicate is required", index, j)
			}
			if h.Hook < 1 {
				return fmt.Errorf("steps[%d].hooks[%d]: hook must be >= 1", index, j)
			}
		}
	case OpErase, OpDeiterate:
		if len(step.Selection) == 0 {
			return fmt.Errorf("steps[%d]: selection is required for %s", index, step.Op)
		}
	case OpIterate:
		if len(step.Selection) == 0 {
			return fmt.Errorf("steps[%d]: selection is required for iterate", index)
		}
		if step.Target == "" {
			return fmt.Errorf("steps[%d]: target is required for iterate", index)
		}
	case OpInsertDoubleCut:
		if step.Parent == "" {
			return fmt.Errorf("steps[%d]: parent is required for insert_double_cut", index)
		}
	case OpRemoveDoubleCut:
		if step.Outer == "" {
			return fmt.Errorf("steps[%d]: outer is required for remove_double_cut", index)
		}
	case OpParse:
		if step.Clif == "" {
			return fmt.Errorf("steps[%d]: clif is required for parse", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	if step.As == NameSA || step.AsOuter == NameSA || step.AsInner == NameSA {
		return fmt.Errorf("steps[%d]: %q is a reserved name", index, NameSA)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertClifEquals:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for clif_equals", index)
		}
	case AssertEntityCount:
		if a.Count < 1 {
			return fmt.Errorf("assertions[%d]: count must be positive for entity_count", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
