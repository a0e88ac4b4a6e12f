package eg

import (
	"github.com/roach88/peirce/internal/store"
)

// Graph is the top-level container: the entity arena plus the identity of
// the Sheet of Assertion (the root context, nesting depth 0).
//
// The Sheet of Assertion always exists and is never removed. Parent
// relationships are held in a separate index keyed by child ID, covering
// both sub-contexts and predicates; ligatures have no parent (their scope
// is the derived home context).
//
// Thread-safety: Graph is NOT safe for concurrent use.
type Graph struct {
	objects *store.Store
	parent  map[ID]ID
	sa      ID
}

// NewGraph creates a graph containing only the Sheet of Assertion under the
// given identity.
func NewGraph(sa ID) *Graph {
	g := &Graph{
		objects: store.New(),
		parent:  make(map[ID]ID),
		sa:      sa,
	}
	g.objects.Put(string(sa), &Context{ID: sa})
	return g
}

// SA returns the identity of the Sheet of Assertion.
func (g *Graph) SA() ID {
	return g.sa
}

// Len returns the number of entities in the graph, the Sheet of Assertion
// included.
func (g *Graph) Len() int {
	return g.objects.Len()
}

// Context returns the context stored under id.
func (g *Graph) Context(id ID) (*Context, bool) {
	obj, ok := g.objects.Get(string(id))
	if !ok {
		return nil, false
	}
	c, ok := obj.(*Context)
	return c, ok
}

// Predicate returns the predicate stored under id.
func (g *Graph) Predicate(id ID) (*Predicate, bool) {
	obj, ok := g.objects.Get(string(id))
	if !ok {
		return nil, false
	}
	p, ok := obj.(*Predicate)
	return p, ok
}

// Ligature returns the ligature stored under id.
func (g *Graph) Ligature(id ID) (*Ligature, bool) {
	obj, ok := g.objects.Get(string(id))
	if !ok {
		return nil, false
	}
	l, ok := obj.(*Ligature)
	return l, ok
}

// PutContext stores a context in the arena without linking it to a parent.
func (g *Graph) PutContext(c *Context) {
	g.objects.Put(string(c.ID), c)
}

// PutPredicate stores a predicate in the arena without linking it to a
// parent.
func (g *Graph) PutPredicate(p *Predicate) {
	g.objects.Put(string(p.ID), p)
}

// PutLigature stores a ligature in the arena.
func (g *Graph) PutLigature(l *Ligature) {
	g.objects.Put(string(l.ID), l)
}

// Delete removes an entity and its parent-index entry. Deleting an absent
// id is a no-op. Delete does not touch the entity's children or
// attachments; structural cleanup is the editor's job.
func (g *Graph) Delete(id ID) {
	g.objects.Delete(string(id))
	delete(g.parent, id)
}

// AttachChild appends child to parent's ordered child list and records the
// parent relationship. The caller must ensure parent is a stored context.
func (g *Graph) AttachChild(parent, child ID) {
	c, _ := g.Context(parent)
	c.Children = append(c.Children, child)
	g.parent[child] = parent
}

// DetachChild removes child from parent's child list and drops the parent
// relationship. Returns false if child was not a child of parent.
func (g *Graph) DetachChild(parent, child ID) bool {
	c, ok := g.Context(parent)
	if !ok || !c.removeChild(child) {
		return false
	}
	delete(g.parent, child)
	return true
}

// Parent returns the containing context of a sub-context or predicate.
// The Sheet of Assertion (and any unlinked entity) has no parent.
func (g *Graph) Parent(id ID) (ID, bool) {
	p, ok := g.parent[id]
	return p, ok
}

// Depth returns the nesting depth of a context: 0 for the Sheet of
// Assertion, parent depth + 1 otherwise.
func (g *Graph) Depth(ctx ID) int {
	depth := 0
	cur := ctx
	for {
		p, ok := g.parent[cur]
		if !ok {
			return depth
		}
		depth++
		cur = p
	}
}

// Positive reports whether a context has even nesting depth.
func (g *Graph) Positive(ctx ID) bool {
	return g.Depth(ctx)%2 == 0
}

// Negative reports whether a context has odd nesting depth.
func (g *Graph) Negative(ctx ID) bool {
	return !g.Positive(ctx)
}

// Ancestors returns the context chain from ctx up to the Sheet of
// Assertion, ctx itself first.
func (g *Graph) Ancestors(ctx ID) []ID {
	var chain []ID
	cur := ctx
	for {
		chain = append(chain, cur)
		p, ok := g.parent[cur]
		if !ok {
			return chain
		}
		cur = p
	}
}

// LCA returns the least common ancestor of the given contexts: the deepest
// context whose subtree contains them all. Returns false only when called
// with no contexts or with contexts outside the tree.
func (g *Graph) LCA(ctxs ...ID) (ID, bool) {
	if len(ctxs) == 0 {
		return "", false
	}
	common := g.Ancestors(ctxs[0])
	for _, ctx := range ctxs[1:] {
		other := make(map[ID]bool)
		for _, id := range g.Ancestors(ctx) {
			other[id] = true
		}
		filtered := common[:0]
		for _, id := range common {
			if other[id] {
				filtered = append(filtered, id)
			}
		}
		common = filtered
	}
	if len(common) == 0 {
		return "", false
	}
	// Ancestors orders deepest first, so the head is the LCA.
	return common[0], true
}

// Home returns a ligature's home context: the least common ancestor of the
// parent contexts of all attached predicates. An unattached ligature
// defaults to the Sheet of Assertion.
func (g *Graph) Home(lig ID) (ID, bool) {
	l, ok := g.Ligature(lig)
	if !ok {
		return "", false
	}
	var ctxs []ID
	seen := make(map[ID]bool)
	for _, att := range l.Attachments {
		if parent, ok := g.Parent(att.Predicate); ok && !seen[parent] {
			seen[parent] = true
			ctxs = append(ctxs, parent)
		}
	}
	if len(ctxs) == 0 {
		return g.sa, true
	}
	return g.LCA(ctxs...)
}

// EachLigature calls fn for every ligature in ID order. Iteration stops if
// fn returns false.
func (g *Graph) EachLigature(fn func(*Ligature) bool) {
	g.objects.Each(func(_ string, obj any) bool {
		if l, ok := obj.(*Ligature); ok {
			return fn(l)
		}
		return true
	})
}

// EachPredicate calls fn for every predicate in ID order. Iteration stops
// if fn returns false.
func (g *Graph) EachPredicate(fn func(*Predicate) bool) {
	g.objects.Each(func(_ string, obj any) bool {
		if p, ok := obj.(*Predicate); ok {
			return fn(p)
		}
		return true
	})
}
