package bot

import (
	"fmt"

	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/model"
)

// Strategy decides the commands for the active piece
type Strategy interface {
	// Name returns the strategy's registered name
	Name() string
	// NextMoves returns the commands to play for the piece in snap,
	// normally ending with a hard drop
	NextMoves(snap model.ViewSnapshot) []model.Command
}

// FrameSource supplies rotation frames for a kind
type FrameSource interface {
	FramesFor(kind model.PieceKind) ([]model.Frame, error)
}

// NewStrategy builds a strategy by name
func NewStrategy(name string, rnd random.Random, frames FrameSource) (Strategy, error) {
	switch name {
	case model.BotStrategyRandom:
		return NewRandomStrategy(rnd), nil
	case model.BotStrategyDrop:
		return NewDropStrategy(frames), nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
	}
}

// DefaultStrategies returns every built-in strategy keyed by name
func DefaultStrategies(rnd random.Random, frames FrameSource) map[string]Strategy {
	strategies := make(map[string]Strategy)
	for _, name := range model.ValidBotStrategies() {
		s, err := NewStrategy(name, rnd, frames)
		if err != nil {
			continue
		}
		strategies[name] = s
	}
	return strategies
}

// moves builds the command list: rotations, then horizontal shifts, then a hard drop
func moves(rotations, shift int) []model.Command {
	cmds := make([]model.Command, 0, rotations+abs(shift)+1)
	for i := 0; i < rotations; i++ {
		cmds = append(cmds, model.UserCommand(model.CommandRotate))
	}
	step := model.CommandRight
	if shift < 0 {
		step = model.CommandLeft
	}
	for i := 0; i < abs(shift); i++ {
		cmds = append(cmds, model.UserCommand(step))
	}
	return append(cmds, model.UserCommand(model.CommandHardDrop))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
