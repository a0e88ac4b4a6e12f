package editor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/peirce/internal/eg"
)

// isomorphic reports whether two predicate sets are structurally
// isomorphic.
//
// This is a bounded, type-exploiting test, not general graph isomorphism:
// the predicate multisets must match by (label, arity, kind), and the
// per-predicate connection signatures must match under the partner ranking
// induced by sorting each set's predicates by identity. Hooks riding a
// ligature that also reaches outside the set compare by that ligature's
// identity, so a copy sharing a line with its original matches the
// original exactly.
func isomorphic(g *eg.Graph, a, b []eg.ID) bool {
	if len(a) != len(b) {
		return false
	}
	sigA := setSignature(g, a)
	sigB := setSignature(g, b)
	if sigA == nil || sigB == nil {
		return false
	}
	for i := range sigA {
		if sigA[i] != sigB[i] {
			return false
		}
	}
	return true
}

// setSignature builds the sorted per-predicate signature list for one
// candidate set. Returns nil if any member is not a live predicate.
func setSignature(g *eg.Graph, set []eg.ID) []string {
	ordered := append([]eg.ID(nil), set...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	rank := make(map[eg.ID]int, len(ordered))
	for i, id := range ordered {
		rank[id] = i
	}

	sigs := make([]string, 0, len(ordered))
	for _, id := range ordered {
		p, ok := g.Predicate(id)
		if !ok {
			return nil
		}
		sigs = append(sigs, predicateSignature(g, p, rank))
	}
	sort.Strings(sigs)
	return sigs
}

// predicateSignature renders one predicate's type plus connection entries.
//
// Per hook, the entries are:
//   - in:<hook>:<partner-rank>:<partner-hook> for every other attachment of
//     the hook's ligature that lands inside the set,
//   - ex:<hook>:<ligature-id> once, when the ligature also reaches outside
//     the set,
//   - open:<hook> for an unbound hook or a line with no other end.
func predicateSignature(g *eg.Graph, p *eg.Predicate, rank map[eg.ID]int) string {
	var entries []string
	for hook := 1; hook <= p.Arity; hook++ {
		lig, bound := p.HookLigature(hook)
		if !bound {
			entries = append(entries, fmt.Sprintf("open:%d", hook))
			continue
		}
		l, ok := g.Ligature(lig)
		if !ok {
			entries = append(entries, fmt.Sprintf("open:%d", hook))
			continue
		}
		self := eg.Attachment{Predicate: p.ID, Hook: hook}
		hasOther := false
		external := false
		for _, att := range l.Attachments {
			if att == self {
				continue
			}
			hasOther = true
			if r, inSet := rank[att.Predicate]; inSet {
				entries = append(entries, fmt.Sprintf("in:%d:%d:%d", hook, r, att.Hook))
			} else {
				external = true
			}
		}
		if external {
			entries = append(entries, fmt.Sprintf("ex:%d:%s", hook, l.ID))
		}
		if !hasOther {
			entries = append(entries, fmt.Sprintf("open:%d", hook))
		}
	}
	sort.Strings(entries)
	return fmt.Sprintf("%q/%d/%s[%s]", p.Label, p.Arity, p.Kind, strings.Join(entries, " "))
}
