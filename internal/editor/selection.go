package editor

import (
	"github.com/roach88/peirce/internal/eg"
)

// Selection is an ordered set of predicate and sub-context IDs naming a
// subgraph for a transformation rule. The Sheet of Assertion is never a
// valid member.
type Selection []eg.ID

// Contains reports whether id is a selected member.
func (s Selection) Contains(id eg.ID) bool {
	for _, m := range s {
		if m == id {
			return true
		}
	}
	return false
}

// rootContext returns the selection's root context: the shallowest context
// containing all top-level members, computed as the LCA of the members'
// containing contexts. Returns false for an empty selection or one with a
// detached member.
func (s Selection) rootContext(g *eg.Graph) (eg.ID, bool) {
	if len(s) == 0 {
		return "", false
	}
	var parents []eg.ID
	seen := make(map[eg.ID]bool)
	for _, m := range s {
		parent, ok := g.Parent(m)
		if !ok {
			return "", false
		}
		if !seen[parent] {
			seen[parent] = true
			parents = append(parents, parent)
		}
	}
	return g.LCA(parents...)
}

// predicates returns the selection's top-level predicate members in
// selection order.
func (s Selection) predicates(g *eg.Graph) []eg.ID {
	var preds []eg.ID
	for _, m := range s {
		if _, ok := g.Predicate(m); ok {
			preds = append(preds, m)
		}
	}
	return preds
}

// contexts returns the selection's top-level context members in selection
// order.
func (s Selection) contexts(g *eg.Graph) []eg.ID {
	var ctxs []eg.ID
	for _, m := range s {
		if _, ok := g.Context(m); ok {
			ctxs = append(ctxs, m)
		}
	}
	return ctxs
}

// closure returns every predicate and context in the selected subtrees:
// the top-level members plus everything nested inside selected contexts.
func (s Selection) closure(g *eg.Graph) map[eg.ID]bool {
	members := make(map[eg.ID]bool)
	var walk func(id eg.ID)
	walk = func(id eg.ID) {
		members[id] = true
		if c, ok := g.Context(id); ok {
			for _, child := range c.Children {
				walk(child)
			}
		}
	}
	for _, m := range s {
		walk(m)
	}
	return members
}
