package clif

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/peirce/internal/eg"
)

// line identifies one term-bearing line of identity: a real ligature, or a
// pseudo-line standing for a single unbound hook. An unbound hook still
// denotes some individual, so it quantifies like a singleton line scoped
// to its predicate's own context.
type line struct {
	lig  eg.ID
	open eg.Attachment
}

// scopedVar is an assigned variable together with the context where its
// quantifier is emitted.
type scopedVar struct {
	name string
	home eg.ID
}

// Translator renders a graph as canonical CLIF text.
//
// The output is deterministic and idempotent: translating the parse of a
// translation reproduces the translation byte for byte. Determinism comes
// from the explicit variable sort key and the lexicographic clause order,
// never from entity identities or map iteration.
//
// A Translator is reusable across sequential calls; the per-call caches
// (term assignment, ligature scope, context depth) are cleared at the
// start of each Translate. It is not safe for concurrent use.
type Translator struct {
	graph *eg.Graph
	terms map[line]string
	vars  []scopedVar
	depth map[eg.ID]int
	homes map[line]eg.ID
}

// NewTranslator creates a translator over the given graph.
func NewTranslator(g *eg.Graph) *Translator {
	return &Translator{graph: g}
}

// Translate renders the whole graph. A wholly empty Sheet of Assertion
// yields the literal "true".
func Translate(g *eg.Graph) string {
	return NewTranslator(g).Translate()
}

// Translate renders the graph from the Sheet of Assertion down.
func (t *Translator) Translate() string {
	t.terms = make(map[line]string)
	t.vars = nil
	t.depth = make(map[eg.ID]int)
	t.homes = make(map[line]eg.ID)

	t.assignTerms()
	body := t.renderContext(t.graph.SA())
	if body == "" {
		return "true"
	}
	return body
}

// keyEntry is one attachment's contribution to a line's sort key. Entries
// order deepest-first (negated depth), then by predicate label and hook
// number.
type keyEntry struct {
	negDepth int
	label    string
	hook     int
}

func lessKeys(a, b []keyEntry) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i].negDepth != b[i].negDepth {
				return a[i].negDepth < b[i].negDepth
			}
			if a[i].label != b[i].label {
				return a[i].label < b[i].label
			}
			return a[i].hook < b[i].hook
		}
	}
	return len(a) < len(b)
}

// assignTerms runs the variable-assignment pre-pass: every line gets a
// stable sort key built from its attachments, lines named by a constant
// take the constant's literal text, and the rest receive x1, x2, … in key
// order.
func (t *Translator) assignTerms() {
	type candidate struct {
		ln       line
		key      []keyEntry
		tiebreak string
		constant string
	}
	var candidates []candidate

	t.graph.EachLigature(func(l *eg.Ligature) bool {
		c := candidate{ln: line{lig: l.ID}, tiebreak: string(l.ID)}
		for _, att := range l.Attachments {
			p, ok := t.graph.Predicate(att.Predicate)
			if !ok {
				continue
			}
			parent, ok := t.graph.Parent(att.Predicate)
			if !ok {
				continue
			}
			c.key = append(c.key, keyEntry{
				negDepth: -t.depthOf(parent),
				label:    p.Label,
				hook:     att.Hook,
			})
			if p.Kind == eg.KindConstant {
				if c.constant == "" || p.Label < c.constant {
					c.constant = p.Label
				}
			}
		}
		sort.Slice(c.key, func(i, j int) bool {
			return lessKeys([]keyEntry{c.key[i]}, []keyEntry{c.key[j]})
		})
		candidates = append(candidates, c)
		return true
	})

	// Pseudo-lines for unbound hooks on relations and functions.
	t.graph.EachPredicate(func(p *eg.Predicate) bool {
		if p.Kind == eg.KindConstant {
			return true
		}
		parent, ok := t.graph.Parent(p.ID)
		if !ok {
			return true
		}
		for hook := 1; hook <= p.Arity; hook++ {
			if _, bound := p.HookLigature(hook); bound {
				continue
			}
			att := eg.Attachment{Predicate: p.ID, Hook: hook}
			candidates = append(candidates, candidate{
				ln:       line{open: att},
				key:      []keyEntry{{negDepth: -t.depthOf(parent), label: p.Label, hook: hook}},
				tiebreak: fmt.Sprintf("%s#%d", p.ID, hook),
			})
		}
		return true
	})

	var unnamed []candidate
	for _, c := range candidates {
		if c.constant != "" {
			t.terms[c.ln] = norm.NFC.String(c.constant)
			continue
		}
		unnamed = append(unnamed, c)
	}
	sort.Slice(unnamed, func(i, j int) bool {
		if lessKeys(unnamed[i].key, unnamed[j].key) {
			return true
		}
		if lessKeys(unnamed[j].key, unnamed[i].key) {
			return false
		}
		return unnamed[i].tiebreak < unnamed[j].tiebreak
	})
	for i, c := range unnamed {
		name := fmt.Sprintf("x%d", i+1)
		t.terms[c.ln] = name
		t.vars = append(t.vars, scopedVar{name: name, home: t.homeOf(c.ln)})
	}
}

// renderContext renders one context's body: direct predicates and child
// cuts as lexicographically sorted clauses, conjoined when more than one,
// and wrapped in an exists for every variable homed here. An empty context
// renders as "" and contributes no clause to its parent.
func (t *Translator) renderContext(ctx eg.ID) string {
	c, ok := t.graph.Context(ctx)
	if !ok {
		return ""
	}
	var clauses []string
	for _, child := range c.Children {
		if p, ok := t.graph.Predicate(child); ok {
			if clause := t.renderPredicate(p); clause != "" {
				clauses = append(clauses, clause)
			}
			continue
		}
		if _, ok := t.graph.Context(child); ok {
			if body := t.renderContext(child); body != "" {
				clauses = append(clauses, "(not "+body+")")
			}
		}
	}
	sort.Strings(clauses)

	var body string
	switch len(clauses) {
	case 0:
		body = ""
	case 1:
		body = clauses[0]
	default:
		body = "(and " + strings.Join(clauses, " ") + ")"
	}

	var vars []string
	for _, v := range t.vars {
		if v.home == ctx {
			vars = append(vars, v.name)
		}
	}
	if len(vars) > 0 {
		if body == "" {
			body = "true"
		}
		sort.Strings(vars)
		body = "(exists (" + strings.Join(vars, " ") + ") " + body + ")"
	}
	return body
}

// renderPredicate renders one predicate clause, or "" when the predicate
// contributes nothing (an attached constant whose line already carries its
// name).
func (t *Translator) renderPredicate(p *eg.Predicate) string {
	label := norm.NFC.String(p.Label)
	switch p.Kind {
	case eg.KindConstant:
		if p.Arity == 0 {
			return label
		}
		lig, bound := p.HookLigature(1)
		if !bound {
			return label
		}
		// The line usually carries this constant's own name; when two
		// distinct constants share a line, the off-name one asserts the
		// identity explicitly.
		if name := t.terms[line{lig: lig}]; name != label {
			return "(= " + name + " " + label + ")"
		}
		return ""
	case eg.KindFunction:
		out := t.term(p, p.OutputHook())
		inputs := make([]string, 0, p.Arity-1)
		for hook := 1; hook < p.Arity; hook++ {
			inputs = append(inputs, t.term(p, hook))
		}
		call := "(" + label
		if len(inputs) > 0 {
			call += " " + strings.Join(inputs, " ")
		}
		call += ")"
		return "(= " + out + " " + call + ")"
	default:
		terms := make([]string, 0, p.Arity)
		for hook := 1; hook <= p.Arity; hook++ {
			terms = append(terms, t.term(p, hook))
		}
		if len(terms) == 0 {
			return "(" + label + ")"
		}
		return "(" + label + " " + strings.Join(terms, " ") + ")"
	}
}

// term returns the assigned term text for one hook.
func (t *Translator) term(p *eg.Predicate, hook int) string {
	if lig, bound := p.HookLigature(hook); bound {
		return t.terms[line{lig: lig}]
	}
	return t.terms[line{open: eg.Attachment{Predicate: p.ID, Hook: hook}}]
}

// depthOf memoizes context nesting depth for the duration of one call.
func (t *Translator) depthOf(ctx eg.ID) int {
	if d, ok := t.depth[ctx]; ok {
		return d
	}
	d := t.graph.Depth(ctx)
	t.depth[ctx] = d
	return d
}

// homeOf memoizes a line's home context. A pseudo-line is scoped to its
// predicate's own context; a real ligature to the LCA of its attachments.
func (t *Translator) homeOf(ln line) eg.ID {
	if h, ok := t.homes[ln]; ok {
		return h
	}
	var home eg.ID
	if ln.lig != "" {
		home, _ = t.graph.Home(ln.lig)
	} else if parent, ok := t.graph.Parent(ln.open.Predicate); ok {
		home = parent
	} else {
		home = t.graph.SA()
	}
	t.homes[ln] = home
	return home
}
