package eg

import "sort"

// Kind classifies a predicate, following Dau's extensions to Peirce's
// original notation.
type Kind string

const (
	// KindRelation is an ordinary n-ary relation spot.
	KindRelation Kind = "relation"

	// KindFunction is a functional relation: the highest-numbered hook is
	// the output, all lower hooks are inputs.
	KindFunction Kind = "function"

	// KindConstant is a named individual. Arity is 1 (the single hook
	// carries the line naming the individual) or 0 for a bare name.
	KindConstant Kind = "constant"
)

// Context is the Sheet of Assertion or a cut. Contexts form a single-rooted
// tree; Children holds predicate and sub-context IDs in insertion order.
// The parent reference lives in the Graph's parent index, not on the
// entity.
type Context struct {
	ID       ID
	Children []ID
}

// removeChild deletes the first occurrence of child from the ordered child
// list. Returns false if child is not present.
func (c *Context) removeChild(child ID) bool {
	for i, id := range c.Children {
		if id == child {
			c.Children = append(c.Children[:i], c.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Predicate is a Peirce "spot": a relation, function, or constant.
//
// Hooks[i] is the ligature bound at hook i+1, or "" when the hook is
// unbound. Hook numbers are 1-based in all APIs; for functions the
// highest-numbered hook is the output.
type Predicate struct {
	ID    ID
	Label string
	Arity int
	Kind  Kind
	Hooks []ID
}

// HookLigature returns the ligature bound at hook n (1-based), or
// ("", false) when the hook is unbound.
func (p *Predicate) HookLigature(n int) (ID, bool) {
	lig := p.Hooks[n-1]
	return lig, lig != ""
}

// OutputHook returns the output hook number for a function predicate.
// Meaningless for other kinds.
func (p *Predicate) OutputHook() int {
	return p.Arity
}

// Attachment is one end of a ligature: a specific hook on a specific
// predicate.
type Attachment struct {
	Predicate ID
	Hook int
}

// less orders attachments by (predicate, hook) for the sorted attachment
// list.
func (a Attachment) less(b Attachment) bool {
	if a.Predicate != b.Predicate {
		return a.Predicate < b.Predicate
	}
	return a.Hook < b.Hook
}

// Ligature is a single continuous line of identity. Its attachments are the
// hooks asserting shared identity of the individual the line denotes.
//
// Attachments are kept sorted by (predicate, hook) so ligature walks are
// deterministic. A ligature with a single attachment is an "open" line and
// is valid; a ligature with zero attachments is garbage and is discarded by
// the editor.
type Ligature struct {
	ID          ID
	Attachments []Attachment

	// Traversed is bookkeeping recomputed on connect: the cuts a line
	// crosses between its home context and each attachment, sorted by ID.
	// Renderers use it to know which cut borders the drawn line passes
	// through; it carries no logical meaning.
	Traversed []ID
}

// Attach inserts an attachment, keeping the list sorted. Attaching an
// already-present attachment is a no-op.
func (l *Ligature) Attach(a Attachment) {
	i := sort.Search(len(l.Attachments), func(i int) bool {
		return !l.Attachments[i].less(a)
	})
	if i < len(l.Attachments) && l.Attachments[i] == a {
		return
	}
	l.Attachments = append(l.Attachments, Attachment{})
	copy(l.Attachments[i+1:], l.Attachments[i:])
	l.Attachments[i] = a
}

// Detach removes an attachment. Returns false if it was not present.
func (l *Ligature) Detach(a Attachment) bool {
	for i, att := range l.Attachments {
		if att == a {
			l.Attachments = append(l.Attachments[:i], l.Attachments[i+1:]...)
			return true
		}
	}
	return false
}

// Attached reports whether the ligature holds the given attachment.
func (l *Ligature) Attached(a Attachment) bool {
	for _, att := range l.Attachments {
		if att == a {
			return true
		}
	}
	return false
}
