package eg

import "github.com/google/uuid"

// ID identifies a single graph entity (context, predicate, or ligature).
type ID string

// IDGenerator produces entity IDs.
// Implemented by UUIDv7Generator (production) and the sequential generator
// in testutil (deterministic tests).
type IDGenerator interface {
	NewID() ID
}

// UUIDv7Generator generates time-sortable UUIDv7 entity IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so sorting IDs
// lexicographically orders entities by creation time. The arena iterates
// in ID order, which makes every walk over the model deterministic and
// creation-ordered.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) NewID() ID {
	return ID(uuid.Must(uuid.NewV7()).String())
}
