package editor

import (
	"io"
	"log/slog"
	"sort"

	"github.com/roach88/peirce/internal/eg"
)

// Editor is the sole mutation API over an existential graph.
//
// Every operation validates fully before touching the model: on failure it
// returns an error and leaves the graph exactly as it was. The validator
// gates each Peirce-rule operation; structural checks gate everything else.
//
// Thread-safety: Editor is NOT safe for concurrent use. All operations are
// synchronous, bounded, in-memory computation.
type Editor struct {
	graph     *eg.Graph
	gen       eg.IDGenerator
	validator *Validator
	logger    *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithIDGenerator replaces the default UUIDv7 entity ID generator.
// Tests use a sequential generator for reproducible IDs.
func WithIDGenerator(gen eg.IDGenerator) Option {
	return func(e *Editor) {
		e.gen = gen
	}
}

// WithLogger sets the logger for mutation debug logging.
// The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// New creates an editor over a fresh graph holding only the Sheet of
// Assertion.
func New(opts ...Option) *Editor {
	e := &Editor{
		gen:    eg.UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.graph = eg.NewGraph(e.gen.NewID())
	e.validator = NewValidator(e.graph)
	return e
}

// Graph returns the underlying model. Callers may read it freely; all
// mutation must go through the editor.
func (e *Editor) Graph() *eg.Graph {
	return e.graph
}

// Validator returns the rule validator bound to this editor's graph.
func (e *Editor) Validator() *Validator {
	return e.validator
}

// SA returns the identity of the Sheet of Assertion.
func (e *Editor) SA() eg.ID {
	return e.graph.SA()
}

// AddCut creates an empty cut inside parent and returns its identity.
func (e *Editor) AddCut(parent eg.ID) (eg.ID, error) {
	if err := e.requireContext(parent); err != nil {
		return "", err
	}
	id := e.gen.NewID()
	e.graph.PutContext(&eg.Context{ID: id})
	e.graph.AttachChild(parent, id)
	e.logger.Debug("add_cut", "cut", id, "parent", parent)
	return id, nil
}

// AddPredicate creates a predicate with arity unbound hooks inside parent
// and returns its identity.
//
// Constants carry arity 1 (the hook holds the line naming the individual)
// or 0 for a bare name with no line.
func (e *Editor) AddPredicate(label string, arity int, parent eg.ID, kind eg.Kind) (eg.ID, error) {
	if err := e.requireContext(parent); err != nil {
		return "", err
	}
	if arity < 0 || (kind == eg.KindConstant && arity > 1) {
		return "", &StructuralError{
			Code:    ErrCodeBadArity,
			Message: "arity not valid for predicate kind",
		}
	}
	id := e.gen.NewID()
	e.graph.PutPredicate(&eg.Predicate{
		ID:    id,
		Label: label,
		Arity: arity,
		Kind:  kind,
		Hooks: make([]eg.ID, arity),
	})
	e.graph.AttachChild(parent, id)
	e.logger.Debug("add_predicate", "predicate", id, "label", label, "arity", arity, "kind", kind)
	return id, nil
}

// AddLigature creates an empty ligature and returns its identity. The
// parser uses this to bind quantified variables before any hook mentions
// them; an empty ligature left unattached scopes to the Sheet of Assertion.
func (e *Editor) AddLigature() eg.ID {
	id := e.gen.NewID()
	e.graph.PutLigature(&eg.Ligature{ID: id})
	e.logger.Debug("add_ligature", "ligature", id)
	return id
}

// Connect joins the given hooks onto one line of identity and returns the
// resulting ligature.
//
// Hooks already bound keep their line: when the hook list names several
// live ligatures they are union-merged, smaller into larger, and the
// absorbed ligatures are discarded. Unbound hooks are attached to the
// survivor. When no hook is bound, a fresh ligature is created.
func (e *Editor) Connect(hooks []eg.Attachment) (eg.ID, error) {
	for _, h := range hooks {
		if err := e.requireHook(h); err != nil {
			return "", err
		}
	}

	// Gather the distinct ligatures already bound, in hook-list order.
	var bound []eg.ID
	seen := make(map[eg.ID]bool)
	for _, h := range hooks {
		p, _ := e.graph.Predicate(h.Predicate)
		if lig, ok := p.HookLigature(h.Hook); ok && !seen[lig] {
			seen[lig] = true
			bound = append(bound, lig)
		}
	}

	var target eg.ID
	switch len(bound) {
	case 0:
		target = e.AddLigature()
	default:
		target = bound[0]
		for _, lig := range bound[1:] {
			target = e.mergeLigatures(target, lig)
		}
	}

	l, _ := e.graph.Ligature(target)
	for _, h := range hooks {
		p, _ := e.graph.Predicate(h.Predicate)
		p.Hooks[h.Hook-1] = target
		l.Attach(h)
	}

	e.recomputeTraversed(target)
	e.logger.Debug("connect", "ligature", target, "hooks", len(hooks))
	return target, nil
}

// Bind attaches a single hook to a named ligature. When the hook is
// already bound to a different ligature, the two lines are union-merged and
// the resulting ligature is returned.
func (e *Editor) Bind(pred eg.ID, hook int, lig eg.ID) (eg.ID, error) {
	h := eg.Attachment{Predicate: pred, Hook: hook}
	if err := e.requireHook(h); err != nil {
		return "", err
	}
	l, ok := e.graph.Ligature(lig)
	if !ok {
		return "", missingEntity(lig)
	}

	p, _ := e.graph.Predicate(pred)
	if current, bound := p.HookLigature(hook); bound {
		if current == lig {
			return lig, nil
		}
		target := e.mergeLigatures(lig, current)
		e.recomputeTraversed(target)
		return target, nil
	}

	p.Hooks[hook-1] = lig
	l.Attach(h)
	e.recomputeTraversed(lig)
	e.logger.Debug("bind", "ligature", lig, "predicate", pred, "hook", hook)
	return lig, nil
}

// Sever detaches a hook from its line of identity and places it alone on a
// freshly created ligature. Severing a hook whose line has no other
// attachment is a no-op; severing an unbound hook gives it a fresh
// singleton line.
func (e *Editor) Sever(hook eg.Attachment) error {
	if err := e.requireHook(hook); err != nil {
		return err
	}
	p, _ := e.graph.Predicate(hook.Predicate)
	current, bound := p.HookLigature(hook.Hook)
	if bound {
		l, _ := e.graph.Ligature(current)
		if len(l.Attachments) < 2 {
			return nil
		}
		l.Detach(hook)
		e.recomputeTraversed(current)
	}

	fresh := e.AddLigature()
	p.Hooks[hook.Hook-1] = fresh
	l, _ := e.graph.Ligature(fresh)
	l.Attach(hook)
	e.logger.Debug("sever", "predicate", hook.Predicate, "hook", hook.Hook, "ligature", fresh)
	return nil
}

// mergeLigatures unions two live ligatures into one, rewriting the hook
// bindings of the absorbed side. The larger ligature survives; on a tie the
// one with the smaller ID does. Returns the survivor.
func (e *Editor) mergeLigatures(a, b eg.ID) eg.ID {
	if a == b {
		return a
	}
	la, _ := e.graph.Ligature(a)
	lb, _ := e.graph.Ligature(b)
	if len(la.Attachments) < len(lb.Attachments) ||
		(len(la.Attachments) == len(lb.Attachments) && b < a) {
		la, lb = lb, la
		a, b = b, a
	}
	for _, att := range lb.Attachments {
		p, _ := e.graph.Predicate(att.Predicate)
		p.Hooks[att.Hook-1] = la.ID
		la.Attach(att)
	}
	e.graph.Delete(lb.ID)
	e.logger.Debug("merge_ligatures", "into", la.ID, "absorbed", lb.ID)
	return la.ID
}

// recomputeTraversed refreshes a ligature's traversed-cuts bookkeeping:
// every cut on the path from an attachment's context up to, but excluding,
// the line's home context.
func (e *Editor) recomputeTraversed(lig eg.ID) {
	l, ok := e.graph.Ligature(lig)
	if !ok {
		return
	}
	home, ok := e.graph.Home(lig)
	if !ok {
		l.Traversed = nil
		return
	}
	seen := make(map[eg.ID]bool)
	var traversed []eg.ID
	for _, att := range l.Attachments {
		ctx, ok := e.graph.Parent(att.Predicate)
		if !ok {
			continue
		}
		for ctx != home {
			if ctx != e.graph.SA() && !seen[ctx] {
				seen[ctx] = true
				traversed = append(traversed, ctx)
			}
			parent, ok := e.graph.Parent(ctx)
			if !ok {
				break
			}
			ctx = parent
		}
	}
	sort.Slice(traversed, func(i, j int) bool { return traversed[i] < traversed[j] })
	l.Traversed = traversed
}

// requireContext fails unless id names a stored context.
func (e *Editor) requireContext(id eg.ID) error {
	if _, ok := e.graph.Context(id); !ok {
		if _, isPred := e.graph.Predicate(id); isPred {
			return notAContext(id)
		}
		return missingEntity(id)
	}
	return nil
}

// requirePredicate fails unless id names a stored predicate.
func (e *Editor) requirePredicate(id eg.ID) (*eg.Predicate, error) {
	p, ok := e.graph.Predicate(id)
	if !ok {
		if _, isCtx := e.graph.Context(id); isCtx {
			return nil, notAPredicate(id)
		}
		return nil, missingEntity(id)
	}
	return p, nil
}

// requireHook fails unless the attachment names a live hook.
func (e *Editor) requireHook(h eg.Attachment) error {
	p, err := e.requirePredicate(h.Predicate)
	if err != nil {
		return err
	}
	if h.Hook < 1 || h.Hook > p.Arity {
		return badHook(h.Predicate, h.Hook, p.Arity)
	}
	return nil
}
