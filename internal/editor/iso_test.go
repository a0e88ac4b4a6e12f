package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/peirce/internal/eg"
)

func TestIsomorphic_TypeMismatch(t *testing.T) {
	e := newTestEditor()
	p, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	q, _ := e.AddPredicate("q", 1, e.SA(), eg.KindRelation)
	p2, _ := e.AddPredicate("p", 2, e.SA(), eg.KindRelation)
	f, _ := e.AddPredicate("p", 1, e.SA(), eg.KindFunction)

	g := e.Graph()
	assert.False(t, isomorphic(g, []eg.ID{p}, []eg.ID{q}), "labels differ")
	assert.False(t, isomorphic(g, []eg.ID{p}, []eg.ID{p2}), "arities differ")
	assert.False(t, isomorphic(g, []eg.ID{p}, []eg.ID{f}), "kinds differ")
	assert.False(t, isomorphic(g, []eg.ID{p}, []eg.ID{p, q}), "sizes differ")
}

func TestIsomorphic_OpenHooks(t *testing.T) {
	e := newTestEditor()
	a, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	b, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)

	assert.True(t, isomorphic(e.Graph(), []eg.ID{a}, []eg.ID{b}),
		"two unconnected occurrences match")
}

func TestIsomorphic_SingletonLineMatchesUnbound(t *testing.T) {
	e := newTestEditor()
	a, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	b, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	_, err := e.Connect([]eg.Attachment{{Predicate: a, Hook: 1}})
	require.NoError(t, err)

	assert.True(t, isomorphic(e.Graph(), []eg.ID{a}, []eg.ID{b}),
		"a line with no other end quantifies like an unbound hook")
}

func TestIsomorphic_SharedExternalLine(t *testing.T) {
	e := newTestEditor()
	anchor, _ := e.AddPredicate("anchor", 2, e.SA(), eg.KindRelation)
	a, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	b, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	c, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)

	// a and b ride one external line, c a different one.
	_, err := e.Connect([]eg.Attachment{
		{Predicate: anchor, Hook: 1},
		{Predicate: a, Hook: 1},
		{Predicate: b, Hook: 1},
	})
	require.NoError(t, err)
	_, err = e.Connect([]eg.Attachment{
		{Predicate: anchor, Hook: 2},
		{Predicate: c, Hook: 1},
	})
	require.NoError(t, err)

	g := e.Graph()
	assert.True(t, isomorphic(g, []eg.ID{a}, []eg.ID{b}),
		"same external ligature identity")
	assert.False(t, isomorphic(g, []eg.ID{a}, []eg.ID{c}),
		"external lines compare by identity")
}

func TestIsomorphic_InternalWiring(t *testing.T) {
	e := newTestEditor()

	// First pair: p and q joined hook to hook.
	p1, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	q1, _ := e.AddPredicate("q", 1, e.SA(), eg.KindRelation)
	_, err := e.Connect([]eg.Attachment{
		{Predicate: p1, Hook: 1},
		{Predicate: q1, Hook: 1},
	})
	require.NoError(t, err)

	// Second pair, wired the same way on a private line.
	p2, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	q2, _ := e.AddPredicate("q", 1, e.SA(), eg.KindRelation)
	_, err = e.Connect([]eg.Attachment{
		{Predicate: p2, Hook: 1},
		{Predicate: q2, Hook: 1},
	})
	require.NoError(t, err)

	// Third pair, left unwired.
	p3, _ := e.AddPredicate("p", 1, e.SA(), eg.KindRelation)
	q3, _ := e.AddPredicate("q", 1, e.SA(), eg.KindRelation)

	g := e.Graph()
	assert.True(t, isomorphic(g, []eg.ID{p1, q1}, []eg.ID{p2, q2}),
		"internal wiring compares by partner rank, not line identity")
	assert.False(t, isomorphic(g, []eg.ID{p1, q1}, []eg.ID{p3, q3}),
		"wired and unwired pairs differ")
}

func TestSetSignature_DeadMember(t *testing.T) {
	e := newTestEditor()
	p, _ := e.AddPredicate("p", 0, e.SA(), eg.KindRelation)

	assert.Nil(t, setSignature(e.Graph(), []eg.ID{p, "nope"}))
}
