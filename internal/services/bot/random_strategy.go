package bot

import (
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/model"
)

// RandomStrategy picks a random rotation and a random column for every piece
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// Name returns the registered name
func (s *RandomStrategy) Name() string {
	return model.BotStrategyRandom
}

// NextMoves rotates 0-3 times and shifts to a random column before dropping.
// Illegal moves along the way are rejected by the engine and cost nothing.
func (s *RandomStrategy) NextMoves(snap model.ViewSnapshot) []model.Command {
	if !snap.HasActive || snap.Board == nil {
		return nil
	}
	rotations := s.random.Intn(4)
	target := s.random.Intn(snap.Board.Cols)
	return moves(rotations, target-snap.X)
}
