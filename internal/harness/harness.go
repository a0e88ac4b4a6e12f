package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/peirce/internal/clif"
	"github.com/roach88/peirce/internal/editor"
	"github.com/roach88/peirce/internal/eg"
	"github.com/roach88/peirce/internal/testutil"
)

// Harness executes one scenario against a fresh editor. Entity IDs come
// from a sequential generator, so traces and golden files are reproducible
// byte for byte.
type Harness struct {
	gen   *testutil.SequentialIDGenerator
	ed    *editor.Editor
	names map[string]eg.ID
}

// Run executes a scenario and returns the result.
//
// A returned error means the scenario itself is broken (an unknown
// symbolic name, an unresolvable reference); domain-level failures from
// the editor or the parser land in the result, matched against each
// step's expect_error.
func Run(scenario *Scenario) (*Result, error) {
	gen := testutil.NewSequentialIDGenerator("n")
	h := &Harness{gen: gen}
	h.reset(editor.New(editor.WithIDGenerator(gen)))

	result := NewResult()
	for i, step := range scenario.Steps {
		opErr, err := h.executeStep(&step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}

		outcome := "ok"
		switch {
		case opErr != nil && step.ExpectError == "":
			outcome = "err:" + errorTag(opErr)
			result.AddError(fmt.Sprintf("steps[%d] (%s): unexpected error: %v", i, step.Op, opErr))
		case opErr != nil:
			tag := errorTag(opErr)
			outcome = "err:" + tag
			if tag != step.ExpectError {
				result.AddError(fmt.Sprintf("steps[%d] (%s): expected error %q, got %q",
					i, step.Op, step.ExpectError, tag))
			}
		case step.ExpectError != "":
			result.AddError(fmt.Sprintf("steps[%d] (%s): expected error %q, got none",
				i, step.Op, step.ExpectError))
		}
		result.AddStep(step.Op, outcome, clif.Translate(h.ed.Graph()))
	}

	result.Final = clif.Translate(h.ed.Graph())
	if scenario.ExpectClif != "" && result.Final != scenario.ExpectClif {
		result.AddError(fmt.Sprintf("final clif mismatch: expected %q, got %q",
			scenario.ExpectClif, result.Final))
	}

	for _, errMsg := range EvaluateAssertions(h.ed, scenario.Assertions) {
		result.AddError(errMsg)
	}
	return result, nil
}

// reset points the harness at a fresh editor and rebinds the name table.
func (h *Harness) reset(ed *editor.Editor) {
	h.ed = ed
	h.names = map[string]eg.ID{NameSA: ed.SA()}
}

// executeStep runs one operation. The first return value is the domain
// error (to be matched against expect_error); the second a harness error.
func (h *Harness) executeStep(step *Step) (error, error) {
	switch step.Op {
	case OpAddCut:
		parent, err := h.resolve(step.Parent)
		if err != nil {
			return nil, err
		}
		cut, opErr := h.ed.AddCut(parent)
		h.bind(step.As, cut, opErr)
		return opErr, nil

	case OpAddPredicate:
		parent, err := h.resolve(step.Parent)
		if err != nil {
			return nil, err
		}
		kind := eg.Kind(step.Kind)
		if kind == "" {
			kind = eg.KindRelation
		}
		pred, opErr := h.ed.AddPredicate(step.Label, step.Arity, parent, kind)
		h.bind(step.As, pred, opErr)
		return opErr, nil

	case OpConnect:
		hooks := make([]eg.Attachment, len(step.Hooks))
		for i, ref := range step.Hooks {
			pred, err := h.resolve(ref.Predicate)
			if err != nil {
				return nil, err
			}
			hooks[i] = eg.Attachment{Predicate: pred, Hook: ref.Hook}
		}
		lig, opErr := h.ed.Connect(hooks)
		h.bind(step.As, lig, opErr)
		return opErr, nil

	case OpErase:
		sel, err := h.resolveSelection(step.Selection)
		if err != nil {
			return nil, err
		}
		return h.ed.Erase(sel), nil

	case OpIterate:
		sel, err := h.resolveSelection(step.Selection)
		if err != nil {
			return nil, err
		}
		target, err := h.resolve(step.Target)
		if err != nil {
			return nil, err
		}
		return h.ed.Iterate(sel, target), nil

	case OpDeiterate:
		sel, err := h.resolveSelection(step.Selection)
		if err != nil {
			return nil, err
		}
		return h.ed.Deiterate(sel), nil

	case OpInsertDoubleCut:
		sel, err := h.resolveSelection(step.Selection)
		if err != nil {
			return nil, err
		}
		parent, err := h.resolve(step.Parent)
		if err != nil {
			return nil, err
		}
		outer, inner, opErr := h.ed.InsertDoubleCut(sel, parent)
		h.bind(step.AsOuter, outer, opErr)
		h.bind(step.AsInner, inner, opErr)
		return opErr, nil

	case OpRemoveDoubleCut:
		outer, err := h.resolve(step.Outer)
		if err != nil {
			return nil, err
		}
		return h.ed.RemoveDoubleCut(outer), nil

	case OpParse:
		ed, opErr := clif.Parse(step.Clif, editor.WithIDGenerator(h.gen))
		if opErr != nil {
			return opErr, nil
		}
		h.reset(ed)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown op %q", step.Op)
	}
}

// resolve maps a symbolic name to its entity ID.
func (h *Harness) resolve(name string) (eg.ID, error) {
	id, ok := h.names[name]
	if !ok {
		return "", fmt.Errorf("unknown entity name %q", name)
	}
	return id, nil
}

// resolveSelection maps a list of symbolic names.
func (h *Harness) resolveSelection(names []string) (editor.Selection, error) {
	sel := make(editor.Selection, len(names))
	for i, name := range names {
		id, err := h.resolve(name)
		if err != nil {
			return nil, err
		}
		sel[i] = id
	}
	return sel, nil
}

// bind records a result entity under its symbolic name, unless the op
// failed or no name was given.
func (h *Harness) bind(name string, id eg.ID, opErr error) {
	if name == "" || opErr != nil {
		return
	}
	h.names[name] = id
}

// errorTag maps a domain error to the tag scenarios match with
// expect_error: the rule name of a validation error, or the code of a
// structural or syntax error.
func errorTag(err error) string {
	var ve *editor.ValidationError
	if errors.As(err, &ve) {
		return string(ve.Rule)
	}
	var se *editor.StructuralError
	if errors.As(err, &se) {
		return string(se.Code)
	}
	var sy *clif.SyntaxError
	if errors.As(err, &sy) {
		return string(sy.Code)
	}
	return "error"
}
