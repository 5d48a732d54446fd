package generator

import (
	"fmt"

	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/model"
)

// DefaultLookahead is the number of upcoming kinds kept in the buffer
const DefaultLookahead = 3

// Generator produces a stream of piece kinds chosen uniformly at random,
// keeping at least lookahead kinds buffered ahead of the next Take.
type Generator struct {
	kinds     []model.PieceKind
	random    random.Random
	lookahead int
	queue     []model.PieceKind
}

// New creates a generator over the given kinds.
// It fails fast if no kinds are registered or the lookahead is not positive.
func New(kinds []model.PieceKind, rnd random.Random, lookahead int) (*Generator, error) {
	if len(kinds) == 0 {
		return nil, model.ErrEmptyRegistry
	}
	if lookahead < 1 {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidLookahead, lookahead)
	}

	g := &Generator{
		kinds:     append([]model.PieceKind(nil), kinds...),
		random:    rnd,
		lookahead: lookahead,
		queue:     make([]model.PieceKind, 0, lookahead+1),
	}
	g.fill(lookahead)
	return g, nil
}

// Take removes and returns the head of the queue, then refills to the lookahead
func (g *Generator) Take() model.PieceKind {
	g.fill(1)
	head := g.queue[0]
	g.queue = g.queue[1:]
	g.fill(g.lookahead)
	return head
}

// Peek returns the head of the queue without removing it
func (g *Generator) Peek() model.PieceKind {
	g.fill(1)
	return g.queue[0]
}

// PeekN returns the next count kinds without removing them,
// growing the buffer if count exceeds it
func (g *Generator) PeekN(count int) []model.PieceKind {
	if count <= 0 {
		return []model.PieceKind{}
	}
	g.fill(count)
	result := make([]model.PieceKind, count)
	copy(result, g.queue[:count])
	return result
}

// Reset reseeds the random source and rebuilds the buffer
func (g *Generator) Reset(seed uint64) {
	g.random.Seed(seed)
	g.queue = g.queue[:0]
	g.fill(g.lookahead)
}

// Lookahead returns the configured buffer size
func (g *Generator) Lookahead() int {
	return g.lookahead
}

// Len returns how many kinds are currently buffered
func (g *Generator) Len() int {
	return len(g.queue)
}

func (g *Generator) fill(n int) {
	for len(g.queue) < n {
		g.queue = append(g.queue, g.kinds[g.random.Intn(len(g.kinds))])
	}
}
