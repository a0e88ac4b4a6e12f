package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/peirce/internal/eg"
	"github.com/roach88/peirce/internal/testutil"
)

func newTestEditor() *Editor {
	return New(WithIDGenerator(testutil.NewSequentialIDGenerator("n")))
}

func TestNew_SheetOfAssertion(t *testing.T) {
	e := newTestEditor()

	sheet, ok := e.Graph().Context(e.SA())
	require.True(t, ok)
	assert.Empty(t, sheet.Children)
	assert.Equal(t, 1, e.Graph().Len())
}

func TestAddCut(t *testing.T) {
	e := newTestEditor()

	cut, err := e.AddCut(e.SA())
	require.NoError(t, err)

	parent, ok := e.Graph().Parent(cut)
	require.True(t, ok)
	assert.Equal(t, e.SA(), parent)
	assert.Equal(t, 1, e.Graph().Depth(cut))
	assert.True(t, e.Graph().Negative(cut))
}

func TestAddCut_MissingParent(t *testing.T) {
	e := newTestEditor()

	_, err := e.AddCut("nope")
	require.Error(t, err)
	assert.True(t, IsStructuralError(err))
}

func TestAddCut_PredicateParent(t *testing.T) {
	e := newTestEditor()
	pred, err := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)
	require.NoError(t, err)

	_, err = e.AddCut(pred)
	require.Error(t, err)
	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeNotAContext, se.Code)
}

func TestAddPredicate(t *testing.T) {
	e := newTestEditor()

	pred, err := e.AddPredicate("on", 2, e.SA(), eg.KindRelation)
	require.NoError(t, err)

	p, ok := e.Graph().Predicate(pred)
	require.True(t, ok)
	assert.Equal(t, "on", p.Label)
	assert.Equal(t, 2, p.Arity)
	assert.Equal(t, eg.KindRelation, p.Kind)
	assert.Len(t, p.Hooks, 2)
	for hook := 1; hook <= 2; hook++ {
		_, bound := p.HookLigature(hook)
		assert.False(t, bound)
	}
}

func TestAddPredicate_ConstantArity(t *testing.T) {
	e := newTestEditor()

	_, err := e.AddPredicate("socrates", 2, e.SA(), eg.KindConstant)
	require.Error(t, err)
	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeBadArity, se.Code)

	_, err = e.AddPredicate("socrates", 0, e.SA(), eg.KindConstant)
	assert.NoError(t, err, "a bare name with no line is allowed")
}

func TestConnect_CreatesFreshLigature(t *testing.T) {
	e := newTestEditor()
	cat, _ := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)
	mat, _ := e.AddPredicate("mat", 1, e.SA(), eg.KindRelation)

	lig, err := e.Connect([]eg.Attachment{
		{Predicate: cat, Hook: 1},
		{Predicate: mat, Hook: 1},
	})
	require.NoError(t, err)

	l, ok := e.Graph().Ligature(lig)
	require.True(t, ok)
	assert.Len(t, l.Attachments, 2)

	p, _ := e.Graph().Predicate(cat)
	bound, ok := p.HookLigature(1)
	require.True(t, ok)
	assert.Equal(t, lig, bound)
}

func TestConnect_ReusesBoundLigature(t *testing.T) {
	e := newTestEditor()
	cat, _ := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)
	mat, _ := e.AddPredicate("mat", 1, e.SA(), eg.KindRelation)
	on, _ := e.AddPredicate("on", 2, e.SA(), eg.KindRelation)

	first, err := e.Connect([]eg.Attachment{
		{Predicate: cat, Hook: 1},
		{Predicate: on, Hook: 1},
	})
	require.NoError(t, err)

	second, err := e.Connect([]eg.Attachment{
		{Predicate: cat, Hook: 1},
		{Predicate: mat, Hook: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, first, second, "an already-bound hook keeps its line")

	l, _ := e.Graph().Ligature(first)
	assert.Len(t, l.Attachments, 3)
}

func TestConnect_MergesSmallerIntoLarger(t *testing.T) {
	e := newTestEditor()
	a, _ := e.AddPredicate("a", 1, e.SA(), eg.KindRelation)
	b, _ := e.AddPredicate("b", 1, e.SA(), eg.KindRelation)
	c, _ := e.AddPredicate("c", 1, e.SA(), eg.KindRelation)

	big, err := e.Connect([]eg.Attachment{
		{Predicate: a, Hook: 1},
		{Predicate: b, Hook: 1},
	})
	require.NoError(t, err)
	small, err := e.Connect([]eg.Attachment{{Predicate: c, Hook: 1}})
	require.NoError(t, err)
	require.NotEqual(t, big, small)

	merged, err := e.Connect([]eg.Attachment{
		{Predicate: a, Hook: 1},
		{Predicate: c, Hook: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, big, merged, "the larger ligature survives the merge")

	_, stillThere := e.Graph().Ligature(small)
	assert.False(t, stillThere, "the absorbed ligature is discarded")

	l, _ := e.Graph().Ligature(big)
	assert.Len(t, l.Attachments, 3)
	p, _ := e.Graph().Predicate(c)
	bound, _ := p.HookLigature(1)
	assert.Equal(t, big, bound)
}

func TestConnect_BadHook(t *testing.T) {
	e := newTestEditor()
	cat, _ := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)

	_, err := e.Connect([]eg.Attachment{{Predicate: cat, Hook: 2}})
	require.Error(t, err)
	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeBadHook, se.Code)

	// Nothing was mutated.
	p, _ := e.Graph().Predicate(cat)
	_, bound := p.HookLigature(1)
	assert.False(t, bound)
}

func TestSever_DetachesOntoFreshLine(t *testing.T) {
	e := newTestEditor()
	cat, _ := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)
	mat, _ := e.AddPredicate("mat", 1, e.SA(), eg.KindRelation)
	shared, _ := e.Connect([]eg.Attachment{
		{Predicate: cat, Hook: 1},
		{Predicate: mat, Hook: 1},
	})

	require.NoError(t, e.Sever(eg.Attachment{Predicate: cat, Hook: 1}))

	old, _ := e.Graph().Ligature(shared)
	assert.Len(t, old.Attachments, 1)

	p, _ := e.Graph().Predicate(cat)
	fresh, bound := p.HookLigature(1)
	require.True(t, bound)
	assert.NotEqual(t, shared, fresh)
	l, _ := e.Graph().Ligature(fresh)
	assert.Equal(t, []eg.Attachment{{Predicate: cat, Hook: 1}}, l.Attachments)
}

func TestSever_SingletonLineIsNoop(t *testing.T) {
	e := newTestEditor()
	cat, _ := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)
	lone, _ := e.Connect([]eg.Attachment{{Predicate: cat, Hook: 1}})

	require.NoError(t, e.Sever(eg.Attachment{Predicate: cat, Hook: 1}))

	p, _ := e.Graph().Predicate(cat)
	bound, _ := p.HookLigature(1)
	assert.Equal(t, lone, bound, "a singleton line is left unaffected")
}

func TestSever_UnboundHookGetsSingletonLine(t *testing.T) {
	e := newTestEditor()
	cat, _ := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)

	require.NoError(t, e.Sever(eg.Attachment{Predicate: cat, Hook: 1}))

	p, _ := e.Graph().Predicate(cat)
	fresh, bound := p.HookLigature(1)
	require.True(t, bound)
	l, _ := e.Graph().Ligature(fresh)
	assert.Len(t, l.Attachments, 1)
}

func TestBind_MergesLines(t *testing.T) {
	e := newTestEditor()
	cat, _ := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)
	mat, _ := e.AddPredicate("mat", 1, e.SA(), eg.KindRelation)
	a, _ := e.Connect([]eg.Attachment{{Predicate: cat, Hook: 1}})
	b, _ := e.Connect([]eg.Attachment{{Predicate: mat, Hook: 1}})

	merged, err := e.Bind(cat, 1, b)
	require.NoError(t, err)

	l, ok := e.Graph().Ligature(merged)
	require.True(t, ok)
	assert.Len(t, l.Attachments, 2)
	gone := a
	if merged == a {
		gone = b
	}
	_, stillThere := e.Graph().Ligature(gone)
	assert.False(t, stillThere)
}

func TestConnect_TraversedCuts(t *testing.T) {
	e := newTestEditor()
	outer, _ := e.AddCut(e.SA())
	inner, _ := e.AddCut(outer)
	cat, _ := e.AddPredicate("cat", 1, e.SA(), eg.KindRelation)
	mat, _ := e.AddPredicate("mat", 1, inner, eg.KindRelation)

	lig, err := e.Connect([]eg.Attachment{
		{Predicate: cat, Hook: 1},
		{Predicate: mat, Hook: 1},
	})
	require.NoError(t, err)

	home, ok := e.Graph().Home(lig)
	require.True(t, ok)
	assert.Equal(t, e.SA(), home)

	l, _ := e.Graph().Ligature(lig)
	assert.ElementsMatch(t, []eg.ID{outer, inner}, l.Traversed,
		"the line crosses both cut borders between its home and the deep attachment")
}
