// Package eg defines the entity model for Peirce's Existential Graphs.
//
// A graph is a single-rooted tree of contexts (the Sheet of Assertion and
// its nested cuts) whose children are predicates and sub-contexts, plus a
// set of ligatures (lines of identity) attaching predicate hooks to each
// other. All entities live in an ID-indexed arena; relationships are held
// as IDs and resolved through the Graph, never as direct object pointers.
//
// The package owns storage, lookup, and the derived tree queries (nesting
// depth, polarity, ancestor walks, least common ancestor, ligature home
// context). All mutation with logical meaning happens in the editor
// package; eg only provides the raw structural primitives the editor
// builds on.
package eg
