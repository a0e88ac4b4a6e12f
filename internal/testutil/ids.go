// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"fmt"
	"sync"

	"github.com/roach88/peirce/internal/eg"
)

// SequentialIDGenerator issues zero-padded sequential entity IDs.
//
// Tests use it in place of the production UUIDv7 generator so that entity
// identities — and therefore arena iteration order and golden output — are
// byte-identical across runs. The zero padding keeps lexicographic order
// equal to creation order, matching the UUIDv7 property the engine relies
// on.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequentialIDGenerator creates a generator issuing prefix-0001,
// prefix-0002, … If prefix is empty, "id" is used.
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// NewID returns the next sequential ID.
// Implements eg.IDGenerator.
func (g *SequentialIDGenerator) NewID() eg.ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return eg.ID(fmt.Sprintf("%s-%04d", g.prefix, g.next))
}

// Reset restarts the sequence. After Reset the next ID is prefix-0001
// again.
func (g *SequentialIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = 0
}
