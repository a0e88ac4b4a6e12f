package editor

import (
	"github.com/roach88/peirce/internal/eg"
)

// Validator holds the pure precondition checks for Peirce's transformation
// rules. Every method is a query: no validator call ever mutates the
// graph.
//
// Polarity recap: a context at even nesting depth is positive, odd is
// negative. Erasure needs a positive root, insertion a negative target;
// iteration may only deepen; double cuts cancel only when truly empty
// in between.
type Validator struct {
	graph *eg.Graph
}

// NewValidator creates a validator over the given graph.
func NewValidator(g *eg.Graph) *Validator {
	return &Validator{graph: g}
}

// CanInsert reports whether an arbitrary subgraph may be drawn in ctx:
// true exactly when ctx is negative.
func (v *Validator) CanInsert(ctx eg.ID) bool {
	if _, ok := v.graph.Context(ctx); !ok {
		return false
	}
	return v.graph.Negative(ctx)
}

// CanErase reports whether the selection may be erased: true exactly when
// the selection's root context is positive.
func (v *Validator) CanErase(sel Selection) bool {
	root, ok := sel.rootContext(v.graph)
	if !ok {
		return false
	}
	return v.graph.Positive(root)
}

// CanIterate reports whether the selection may be copied into target:
// target must be nested at least as deep as the selection's root context,
// and must not be one of the selected contexts themselves.
func (v *Validator) CanIterate(sel Selection, target eg.ID) bool {
	if _, ok := v.graph.Context(target); !ok {
		return false
	}
	root, ok := sel.rootContext(v.graph)
	if !ok {
		return false
	}
	if v.graph.Depth(target) < v.graph.Depth(root) {
		return false
	}
	return !sel.Contains(target)
}

// CanDeiterate reports whether the selection is a copy that de-iteration
// may remove: some ancestor context of the selection's root must hold a
// structurally isomorphic set of predicates.
//
// The search walks outward from the root's parent context. At each
// ancestor it enumerates combinations of the ancestor's direct predicates
// of matching size and tests them against the selection with the bounded
// connection-signature isomorphism; the first match wins.
//
// The bounded check covers predicate selections only: a selection
// containing sub-contexts is rejected rather than half-checked.
func (v *Validator) CanDeiterate(sel Selection) bool {
	if len(sel.contexts(v.graph)) > 0 {
		return false
	}
	preds := sel.predicates(v.graph)
	if len(preds) == 0 {
		return false
	}
	root, ok := sel.rootContext(v.graph)
	if !ok {
		return false
	}

	ancestor, ok := v.graph.Parent(root)
	for ok {
		if v.hasIsomorphicSubset(ancestor, preds) {
			return true
		}
		ancestor, ok = v.graph.Parent(ancestor)
	}
	return false
}

// hasIsomorphicSubset reports whether any size-k combination of ctx's
// direct predicates is isomorphic to the k selected predicates.
func (v *Validator) hasIsomorphicSubset(ctx eg.ID, preds []eg.ID) bool {
	c, ok := v.graph.Context(ctx)
	if !ok {
		return false
	}
	var candidates []eg.ID
	for _, child := range c.Children {
		if _, ok := v.graph.Predicate(child); ok {
			candidates = append(candidates, child)
		}
	}
	if len(candidates) < len(preds) {
		return false
	}

	found := false
	combinations(candidates, len(preds), func(subset []eg.ID) bool {
		if isomorphic(v.graph, subset, preds) {
			found = true
			return false
		}
		return true
	})
	return found
}

// CanRemoveDoubleCut reports whether outer and its single child form a
// removable double cut: outer must be negative and hold exactly one child,
// which must be a context. Any predicate of outer's own breaks the pair.
func (v *Validator) CanRemoveDoubleCut(outer eg.ID) bool {
	c, ok := v.graph.Context(outer)
	if !ok || !v.graph.Negative(outer) {
		return false
	}
	if len(c.Children) != 1 {
		return false
	}
	_, isContext := v.graph.Context(c.Children[0])
	return isContext
}

// CanApplyFunctionalPropertyRule reports whether two function predicates
// denote the same application: same label and arity, and every input hook
// pair rides the same ligature. Connecting the outputs is then sound.
func (v *Validator) CanApplyFunctionalPropertyRule(p1, p2 eg.ID) bool {
	f1, ok := v.graph.Predicate(p1)
	if !ok {
		return false
	}
	f2, ok := v.graph.Predicate(p2)
	if !ok {
		return false
	}
	if f1.Kind != eg.KindFunction || f2.Kind != eg.KindFunction {
		return false
	}
	if f1.Label != f2.Label || f1.Arity != f2.Arity || p1 == p2 {
		return false
	}
	for hook := 1; hook < f1.Arity; hook++ {
		l1, ok1 := f1.HookLigature(hook)
		l2, ok2 := f2.HookLigature(hook)
		if !ok1 || !ok2 || l1 != l2 {
			return false
		}
	}
	return true
}

// CanApplyConstantIdentityRule reports whether two constant predicates name
// the same individual: both constants, identical label, each with the
// single line-bearing hook.
func (v *Validator) CanApplyConstantIdentityRule(p1, p2 eg.ID) bool {
	c1, ok := v.graph.Predicate(p1)
	if !ok {
		return false
	}
	c2, ok := v.graph.Predicate(p2)
	if !ok {
		return false
	}
	if c1.Kind != eg.KindConstant || c2.Kind != eg.KindConstant || p1 == p2 {
		return false
	}
	return c1.Label == c2.Label && c1.Arity == 1 && c2.Arity == 1
}

// combinations calls fn for each size-k subset of ids, in lexicographic
// index order. Enumeration stops early if fn returns false.
func combinations(ids []eg.ID, k int, fn func([]eg.ID) bool) {
	subset := make([]eg.ID, 0, k)
	var rec func(start int) bool
	rec = func(start int) bool {
		if len(subset) == k {
			return fn(subset)
		}
		for i := start; i <= len(ids)-(k-len(subset)); i++ {
			subset = append(subset, ids[i])
			if !rec(i + 1) {
				return false
			}
			subset = subset[:len(subset)-1]
		}
		return true
	}
	rec(0)
}
