package board

import (
	"slices"

	"github.com/mcoot/blockdrop/internal/model"
)

// Merge returns a new board with the frame's filled cells written at pos.
// The input board is not modified. Cells that fall outside the board are dropped.
func Merge(b *model.Board, frame model.Frame, pos model.Position) *model.Board {
	merged := b.Clone()
	for i, row := range frame {
		for j, cell := range row {
			if cell == model.Empty {
				continue
			}
			merged.Set(model.Position{X: pos.X + j, Y: pos.Y + i}, cell)
		}
	}
	return merged
}

// ClearFullRows removes every full row in a single bottom-up pass.
// Remaining rows keep their relative order and settle against the bottom,
// and the vacated rows at the top are empty. The input board is not modified.
func ClearFullRows(b *model.Board) model.ClearOutcome {
	result := model.NewBoard(b.Rows, b.Cols)
	var cleared []int

	write := b.Rows - 1
	for read := b.Rows - 1; read >= 0; read-- {
		if b.IsRowFull(read) {
			cleared = append(cleared, read)
			continue
		}
		copy(result.Cells[write], b.Cells[read])
		write--
	}

	// Collected bottom-up; report ascending
	slices.Reverse(cleared)

	return model.ClearOutcome{
		LinesRemoved: len(cleared),
		Board:        result,
		ClearedRows:  cleared,
	}
}
