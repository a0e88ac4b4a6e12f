// Package store provides an ordered, ID-indexed arena for graph entities.
//
// The arena replaces direct object-to-object references: entities hold IDs,
// and all resolution goes through the arena. This avoids ownership cycles
// between a context and its children and makes entity lifetime explicit.
//
// Iteration order is the sort order of IDs, backed by a red-black tree, so
// a walk over the arena is deterministic regardless of insertion order.
// With UUIDv7 entity IDs this is also creation order.
package store
