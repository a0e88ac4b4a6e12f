package clif

import (
	"github.com/roach88/peirce/internal/editor"
	"github.com/roach88/peirce/internal/eg"
)

// Parser builds a fresh graph from a CLIF sentence, driving the editor's
// mutation API only. The term binding table is per call, so a Parser is
// reusable across sequential parses; it is not safe for concurrent use.
type Parser struct {
	opts []editor.Option
}

// NewParser creates a parser. Options are forwarded to the editor created
// for each parse (tests pass a deterministic ID generator).
func NewParser(opts ...editor.Option) *Parser {
	return &Parser{opts: opts}
}

// Parse is a convenience wrapper for a one-shot parse.
func Parse(input string, opts ...editor.Option) (*editor.Editor, error) {
	return NewParser(opts...).Parse(input)
}

// Parse builds a fresh model for one CLIF sentence and returns the editor
// owning it. The literal "true" parses to the empty graph.
func (p *Parser) Parse(input string) (*editor.Editor, error) {
	ed := editor.New(p.opts...)
	expr, err := parseSexpr(input)
	if err != nil {
		return nil, err
	}
	b := &builder{ed: ed, bindings: make(map[string]eg.ID)}
	if err := b.sentence(expr, ed.SA()); err != nil {
		return nil, err
	}
	return ed, nil
}

// builder walks the S-expression tree against a current context and a
// term-to-ligature binding table.
type builder struct {
	ed       *editor.Editor
	bindings map[string]eg.ID
}

// sentence builds one sentence into ctx.
func (b *builder) sentence(expr sexpr, ctx eg.ID) error {
	atom, ok := expr.(string)
	if ok {
		// The empty graph round-trips through the literal "true"; any
		// other bare atom asserts a name with no line.
		if atom == "true" {
			return nil
		}
		_, err := b.ed.AddPredicate(atom, 0, ctx, eg.KindConstant)
		return err
	}

	list := expr.([]sexpr)
	if len(list) == 0 {
		return badForm("()", "empty sentence")
	}
	head, ok := list[0].(string)
	if !ok {
		return badForm("sentence", "operator position holds a list")
	}

	switch head {
	case "exists":
		return b.exists(list, ctx)
	case "and":
		for _, conjunct := range list[1:] {
			if err := b.sentence(conjunct, ctx); err != nil {
				return err
			}
		}
		return nil
	case "not":
		if len(list) != 2 {
			return badForm("not", "expected exactly one argument")
		}
		cut, err := b.ed.AddCut(ctx)
		if err != nil {
			return err
		}
		return b.sentence(list[1], cut)
	case "=":
		if len(list) != 3 {
			return badForm("=", "expected exactly two arguments")
		}
		return b.identity(list[1], list[2], ctx)
	default:
		return b.atomic(head, list[1:], ctx)
	}
}

// exists binds each declared variable to a fresh ligature and builds the
// body in the same context. Quantifier scope is recovered from ligature
// connectivity, not from a nested context.
func (b *builder) exists(list []sexpr, ctx eg.ID) error {
	if len(list) != 3 {
		return badForm("exists", "expected a variable list and a body")
	}
	decls, ok := list[1].([]sexpr)
	if !ok {
		return badForm("exists", "variable list is not a list")
	}
	for _, decl := range decls {
		name, ok := decl.(string)
		if !ok {
			return badForm("exists", "variable name is not an atom")
		}
		if _, bound := b.bindings[name]; !bound {
			b.bindings[name] = b.ed.AddLigature()
		}
	}
	return b.sentence(list[2], ctx)
}

// atomic builds a relation predicate and connects each argument term.
func (b *builder) atomic(label string, args []sexpr, ctx eg.ID) error {
	pred, err := b.ed.AddPredicate(label, len(args), ctx, eg.KindRelation)
	if err != nil {
		return err
	}
	for i, arg := range args {
		lig, err := b.term(arg, ctx)
		if err != nil {
			return err
		}
		if _, err := b.ed.Bind(pred, i+1, lig); err != nil {
			return err
		}
	}
	return nil
}

// identity handles the two readings of "=": a function-definition form
// when either side is a list, a plain identity relation between two terms
// otherwise.
func (b *builder) identity(lhs, rhs sexpr, ctx eg.ID) error {
	if _, lhsIsList := lhs.([]sexpr); lhsIsList {
		if _, rhsIsList := rhs.([]sexpr); !rhsIsList {
			lhs, rhs = rhs, lhs
		}
	}
	if call, ok := rhs.([]sexpr); ok {
		out, err := b.term(lhs, ctx)
		if err != nil {
			return err
		}
		_, err = b.functionTerm(call, ctx, out)
		return err
	}

	left, err := b.term(lhs, ctx)
	if err != nil {
		return err
	}
	right, err := b.term(rhs, ctx)
	if err != nil {
		return err
	}
	pred, err := b.ed.AddPredicate("=", 2, ctx, eg.KindRelation)
	if err != nil {
		return err
	}
	if _, err := b.ed.Bind(pred, 1, left); err != nil {
		return err
	}
	_, err = b.ed.Bind(pred, 2, right)
	return err
}

// term resolves one term to a ligature: a bound variable's line, a fresh
// unary constant's line for an unbound atom, or a function application's
// output line for a list.
func (b *builder) term(expr sexpr, ctx eg.ID) (eg.ID, error) {
	if atom, ok := expr.(string); ok {
		if lig, bound := b.bindings[atom]; bound {
			return lig, nil
		}
		pred, err := b.ed.AddPredicate(atom, 1, ctx, eg.KindConstant)
		if err != nil {
			return "", err
		}
		lig := b.ed.AddLigature()
		if _, err := b.ed.Bind(pred, 1, lig); err != nil {
			return "", err
		}
		return lig, nil
	}
	return b.functionTerm(expr.([]sexpr), ctx, "")
}

// functionTerm builds a function predicate for a call form, wiring inputs
// to their term lines and the output hook to out (fresh when out is "").
// Returns the output line.
func (b *builder) functionTerm(call []sexpr, ctx eg.ID, out eg.ID) (eg.ID, error) {
	if len(call) == 0 {
		return "", badForm("()", "empty function application")
	}
	label, ok := call[0].(string)
	if !ok {
		return "", badForm("function", "function name is not an atom")
	}
	inputs := call[1:]

	inputLines := make([]eg.ID, len(inputs))
	for i, input := range inputs {
		lig, err := b.term(input, ctx)
		if err != nil {
			return "", err
		}
		inputLines[i] = lig
	}

	pred, err := b.ed.AddPredicate(label, len(inputs)+1, ctx, eg.KindFunction)
	if err != nil {
		return "", err
	}
	for i, lig := range inputLines {
		if _, err := b.ed.Bind(pred, i+1, lig); err != nil {
			return "", err
		}
	}
	if out == "" {
		out = b.ed.AddLigature()
	}
	return b.ed.Bind(pred, len(inputs)+1, out)
}
