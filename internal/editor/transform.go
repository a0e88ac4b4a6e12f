package editor

import (
	"sort"

	"github.com/roach88/peirce/internal/eg"
)

// Erase removes the selected predicates and sub-contexts (with everything
// nested inside them). Erasure is only permitted when the selection's root
// context is positive.
//
// Hooks of erased predicates are detached from their ligatures; the
// remaining attachments persist, and a ligature left with no attachment at
// all is discarded.
func (e *Editor) Erase(sel Selection) error {
	if err := e.requireSelection(sel); err != nil {
		return err
	}
	if !e.validator.CanErase(sel) {
		return ruleError(RuleErasure, "selection root context is not positive")
	}
	e.eraseUnchecked(sel)
	return nil
}

// Iterate deep-copies the selection into target with fresh identities.
//
// Ligature handling follows the iteration rule: a line living entirely
// inside the selection is copied to a private line wiring only the
// duplicated hooks, while a line that also reaches outside the selection is
// shared — each duplicated hook attaches to the same external ligature as
// its original.
func (e *Editor) Iterate(sel Selection, target eg.ID) error {
	if err := e.requireSelection(sel); err != nil {
		return err
	}
	if err := e.requireContext(target); err != nil {
		return err
	}
	if !e.validator.CanIterate(sel, target) {
		return ruleError(RuleIteration, "target context is shallower than the selection or selected")
	}

	// Copy top-level members in ID order so the copies' identity order
	// mirrors the originals'. The isomorphism ranking depends on this.
	ordered := append([]eg.ID(nil), sel...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	idMap := make(map[eg.ID]eg.ID)
	var copyEntity func(id, parent eg.ID)
	copyEntity = func(id, parent eg.ID) {
		if p, ok := e.graph.Predicate(id); ok {
			dup := &eg.Predicate{
				ID:    e.gen.NewID(),
				Label: p.Label,
				Arity: p.Arity,
				Kind:  p.Kind,
				Hooks: make([]eg.ID, p.Arity),
			}
			idMap[id] = dup.ID
			e.graph.PutPredicate(dup)
			e.graph.AttachChild(parent, dup.ID)
			return
		}
		c, _ := e.graph.Context(id)
		dup := &eg.Context{ID: e.gen.NewID()}
		idMap[id] = dup.ID
		e.graph.PutContext(dup)
		e.graph.AttachChild(parent, dup.ID)
		for _, child := range c.Children {
			copyEntity(child, dup.ID)
		}
	}
	for _, m := range ordered {
		copyEntity(m, target)
	}

	e.wireCopiedLigatures(sel, idMap)
	e.logger.Debug("iterate", "members", len(sel), "target", target)
	return nil
}

// wireCopiedLigatures connects the hooks of duplicated predicates after an
// iteration, per the private-copy versus shared-line split.
func (e *Editor) wireCopiedLigatures(sel Selection, idMap map[eg.ID]eg.ID) {
	inside := sel.closure(e.graph)

	// Original predicates in the closure, in ID order for determinism.
	var preds []eg.ID
	for id := range inside {
		if _, ok := e.graph.Predicate(id); ok {
			preds = append(preds, id)
		}
	}
	sort.Slice(preds, func(i, j int) bool { return preds[i] < preds[j] })

	done := make(map[eg.ID]bool)
	for _, pid := range preds {
		p, _ := e.graph.Predicate(pid)
		for hook := 1; hook <= p.Arity; hook++ {
			lig, bound := p.HookLigature(hook)
			if !bound || done[lig] {
				continue
			}
			done[lig] = true

			l, _ := e.graph.Ligature(lig)
			attachments := append([]eg.Attachment(nil), l.Attachments...)
			internal := true
			for _, att := range attachments {
				if !inside[att.Predicate] {
					internal = false
					break
				}
			}

			target := lig
			if internal {
				target = e.AddLigature()
			}
			tl, _ := e.graph.Ligature(target)
			for _, att := range attachments {
				dup, copied := idMap[att.Predicate]
				if !copied {
					continue
				}
				dp, _ := e.graph.Predicate(dup)
				dp.Hooks[att.Hook-1] = target
				tl.Attach(eg.Attachment{Predicate: dup, Hook: att.Hook})
			}
			e.recomputeTraversed(target)
		}
	}
}

// Deiterate removes a selection that is a copy of an isomorphic subgraph in
// an enclosing context. The mechanics are those of erasure, but gated on
// the de-iteration precondition instead of polarity — de-iteration is
// sound in any context.
func (e *Editor) Deiterate(sel Selection) error {
	if err := e.requireSelection(sel); err != nil {
		return err
	}
	if !e.validator.CanDeiterate(sel) {
		return ruleError(RuleDeiteration, "no isomorphic original found in any enclosing context")
	}
	e.eraseUnchecked(sel)
	return nil
}

// InsertDoubleCut draws a double cut in parent and returns the outer and
// inner cut identities. When a selection is given, its members are
// re-parented from parent into the inner cut, so the result asserts
// exactly what parent asserted before. The operation is always valid on a
// well-formed request.
func (e *Editor) InsertDoubleCut(sel Selection, parent eg.ID) (eg.ID, eg.ID, error) {
	if err := e.requireContext(parent); err != nil {
		return "", "", err
	}
	for _, m := range sel {
		p, ok := e.graph.Parent(m)
		if !ok || p != parent {
			return "", "", &StructuralError{
				Code:    ErrCodeDetachedSelection,
				Message: "selection member is not a child of the double-cut parent",
				Entity:  m,
			}
		}
	}

	outer, err := e.AddCut(parent)
	if err != nil {
		return "", "", err
	}
	inner, err := e.AddCut(outer)
	if err != nil {
		return "", "", err
	}
	for _, m := range sel {
		e.graph.DetachChild(parent, m)
		e.graph.AttachChild(inner, m)
	}
	e.logger.Debug("insert_double_cut", "outer", outer, "inner", inner, "moved", len(sel))
	return outer, inner, nil
}

// RemoveDoubleCut splices the inner cut's children up into the outer cut's
// parent and discards both cuts. Valid only when outer and its sole child
// form a true double cut: negative outer, exactly one child, no predicates
// of outer's own.
func (e *Editor) RemoveDoubleCut(outer eg.ID) error {
	if err := e.requireContext(outer); err != nil {
		return err
	}
	if !e.validator.CanRemoveDoubleCut(outer) {
		return ruleError(RuleDoubleCut, "outer cut is not a removable double cut")
	}

	parent, _ := e.graph.Parent(outer)
	outerCtx, _ := e.graph.Context(outer)
	inner := outerCtx.Children[0]
	innerCtx, _ := e.graph.Context(inner)

	for _, child := range append([]eg.ID(nil), innerCtx.Children...) {
		e.graph.DetachChild(inner, child)
		e.graph.AttachChild(parent, child)
	}
	e.graph.DetachChild(outer, inner)
	e.graph.DetachChild(parent, outer)
	e.graph.Delete(inner)
	e.graph.Delete(outer)
	e.logger.Debug("remove_double_cut", "outer", outer, "inner", inner)
	return nil
}

// ApplyFunctionalPropertyRule connects the output hooks of two function
// predicates that share label, arity, and every input line: a function
// applied to the same arguments denotes the same individual.
func (e *Editor) ApplyFunctionalPropertyRule(p1, p2 eg.ID) error {
	f1, err := e.requirePredicate(p1)
	if err != nil {
		return err
	}
	if _, err := e.requirePredicate(p2); err != nil {
		return err
	}
	if !e.validator.CanApplyFunctionalPropertyRule(p1, p2) {
		return ruleError(RuleFunctionalProp, "predicates are not matching function applications")
	}
	_, err = e.Connect([]eg.Attachment{
		{Predicate: p1, Hook: f1.OutputHook()},
		{Predicate: p2, Hook: f1.OutputHook()},
	})
	return err
}

// ApplyConstantIdentityRule connects the hooks of two constant predicates
// bearing the same label: two occurrences of one name denote one
// individual.
func (e *Editor) ApplyConstantIdentityRule(p1, p2 eg.ID) error {
	if _, err := e.requirePredicate(p1); err != nil {
		return err
	}
	if _, err := e.requirePredicate(p2); err != nil {
		return err
	}
	if !e.validator.CanApplyConstantIdentityRule(p1, p2) {
		return ruleError(RuleConstantIdentity, "predicates are not matching constants")
	}
	_, err := e.Connect([]eg.Attachment{
		{Predicate: p1, Hook: 1},
		{Predicate: p2, Hook: 1},
	})
	return err
}

// requireSelection fails unless every member is a live, attached predicate
// or sub-context. The Sheet of Assertion is never a valid member.
func (e *Editor) requireSelection(sel Selection) error {
	if len(sel) == 0 {
		return &StructuralError{
			Code:    ErrCodeDetachedSelection,
			Message: "selection is empty",
		}
	}
	for _, m := range sel {
		_, isPred := e.graph.Predicate(m)
		_, isCtx := e.graph.Context(m)
		if !isPred && !isCtx {
			return missingEntity(m)
		}
		if _, ok := e.graph.Parent(m); !ok {
			return &StructuralError{
				Code:    ErrCodeDetachedSelection,
				Message: "selection member has no containing context",
				Entity:  m,
			}
		}
	}
	return nil
}

// eraseUnchecked performs the mechanics of erasure without rule gating.
// Shared by Erase and Deiterate after their respective validations.
func (e *Editor) eraseUnchecked(sel Selection) {
	for _, m := range sel {
		if parent, ok := e.graph.Parent(m); ok {
			e.graph.DetachChild(parent, m)
		}
		e.removeEntity(m)
	}
	e.logger.Debug("erase", "members", len(sel))
}

// removeEntity destroys an entity and everything nested inside it,
// detaching predicate hooks from their ligatures along the way.
func (e *Editor) removeEntity(id eg.ID) {
	if p, ok := e.graph.Predicate(id); ok {
		for hook := 1; hook <= p.Arity; hook++ {
			lig, bound := p.HookLigature(hook)
			if !bound {
				continue
			}
			l, ok := e.graph.Ligature(lig)
			if !ok {
				continue
			}
			l.Detach(eg.Attachment{Predicate: id, Hook: hook})
			if len(l.Attachments) == 0 {
				e.graph.Delete(lig)
			} else {
				e.recomputeTraversed(lig)
			}
		}
		e.graph.Delete(id)
		return
	}
	if c, ok := e.graph.Context(id); ok {
		for _, child := range append([]eg.ID(nil), c.Children...) {
			e.removeEntity(child)
		}
		e.graph.Delete(id)
	}
}
