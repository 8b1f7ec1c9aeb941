package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator returns "run-0001", "run-0002", ... and satisfies
// store.IDGenerator.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator uses prefix, or "run" when prefix is empty.
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "run"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// FixedIDGenerator returns predetermined IDs in order and panics once they
// are used up, which catches a test that records more runs than it
// expects.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("FixedIDGenerator: all IDs used")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
