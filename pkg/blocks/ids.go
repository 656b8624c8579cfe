package blocks

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator produces block IDs. Injectable so tests and deterministic
// tooling can supply a sequential generator.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the default collision-resistant generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequentialIDGenerator hands out "block-1", "block-2", ... for
// deterministic output in tests and fixtures. Not safe for concurrent use.
type SequentialIDGenerator struct {
	Prefix string
	n      int
}

func (g *SequentialIDGenerator) NewID() string {
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "block"
	}
	return prefix + "-" + strconv.Itoa(g.n)
}
