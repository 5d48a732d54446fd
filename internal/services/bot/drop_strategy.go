package bot

import (
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/board"
)

// Placement weights for DropStrategy
const (
	weightHeight    = -0.51
	weightLines     = 0.76
	weightHoles     = -0.36
	weightBumpiness = -0.18
)

// DropStrategy tries every rotation and column for the active piece and picks
// the landing that leaves the best board
type DropStrategy struct {
	frames FrameSource
}

// NewDropStrategy creates a new DropStrategy
func NewDropStrategy(frames FrameSource) *DropStrategy {
	return &DropStrategy{frames: frames}
}

// Name returns the registered name
func (s *DropStrategy) Name() string {
	return model.BotStrategyDrop
}

// NextMoves returns the rotations and shifts for the best placement followed by a hard drop
func (s *DropStrategy) NextMoves(snap model.ViewSnapshot) []model.Command {
	if !snap.HasActive || snap.Board == nil {
		return nil
	}
	frames, err := s.frames.FramesFor(snap.Kind)
	if err != nil || len(frames) == 0 {
		return []model.Command{model.UserCommand(model.CommandHardDrop)}
	}

	bestScore := 0.0
	bestRotations, bestShift := 0, 0
	found := false

	for turns := 0; turns < len(frames); turns++ {
		frame := frames[(snap.Rotation+turns)%len(frames)]
		for x := -frame.Width(); x < snap.Board.Cols; x++ {
			start := model.Position{X: x, Y: snap.Y}
			if board.Collides(snap.Board, frame, start) {
				continue
			}
			landing := model.Position{X: x, Y: board.GhostY(snap.Board, frame, start)}
			score := Evaluate(board.Merge(snap.Board, frame, landing))
			if !found || score > bestScore {
				found = true
				bestScore = score
				bestRotations = turns
				bestShift = x - snap.X
			}
		}
	}

	return moves(bestRotations, bestShift)
}

// Evaluate scores a board after a piece has been merged; higher is better
func Evaluate(b *model.Board) float64 {
	outcome := board.ClearFullRows(b)
	cleared := outcome.Board

	heights := make([]int, cleared.Cols)
	holes := 0
	for col := 0; col < cleared.Cols; col++ {
		seenBlock := false
		for row := 0; row < cleared.Rows; row++ {
			filled := cleared.Cells[row][col] != model.Empty
			if filled && !seenBlock {
				seenBlock = true
				heights[col] = cleared.Rows - row
			}
			if !filled && seenBlock {
				holes++
			}
		}
	}

	aggregate, bumpiness := 0, 0
	for col, h := range heights {
		aggregate += h
		if col > 0 {
			bumpiness += abs(h - heights[col-1])
		}
	}

	return weightHeight*float64(aggregate) +
		weightLines*float64(outcome.LinesRemoved) +
		weightHoles*float64(holes) +
		weightBumpiness*float64(bumpiness)
}
