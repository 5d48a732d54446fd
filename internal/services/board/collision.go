package board

import "github.com/mcoot/blockdrop/internal/model"

// Collides reports whether placing frame with its top-left cell at pos would
// put any filled cell outside the board or onto an occupied cell.
// The frame must be rectangular.
func Collides(b *model.Board, frame model.Frame, pos model.Position) bool {
	for i, row := range frame {
		for j, cell := range row {
			if cell == model.Empty {
				continue
			}
			target := model.Position{X: pos.X + j, Y: pos.Y + i}
			if !b.IsValidPosition(target) {
				return true
			}
			if b.Cells[target.Y][target.X] != model.Empty {
				return true
			}
		}
	}
	return false
}

// GhostY returns the lowest row the frame can reach by repeated single-row
// drops from pos. If pos itself collides, pos.Y is returned.
func GhostY(b *model.Board, frame model.Frame, pos model.Position) int {
	if Collides(b, frame, pos) {
		return pos.Y
	}
	y := pos.Y
	for y < b.Rows && !Collides(b, frame, model.Position{X: pos.X, Y: y + 1}) {
		y++
	}
	return y
}
