package model

import "strconv"

// Cell is a color id. 0 means empty.
type Cell uint8

// Empty is the value of an unoccupied cell
const Empty Cell = 0

// MarshalJSON writes the color id as a number, so rows encode as arrays
// rather than base64 byte strings
func (c Cell) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(c), 10), nil
}

// Position is a board coordinate. X is the column, Y is the row.
type Position struct {
	X int // 0-indexed from left
	Y int // 0-indexed from top
}

// Board is the playfield grid
type Board struct {
	Rows  int      `json:"rows" yaml:"rows"`
	Cols  int      `json:"cols" yaml:"cols"`
	Cells [][]Cell `json:"cells" yaml:"cells"` // Row-major: Cells[row][col]
}

// NewBoard creates an empty board of the given size
func NewBoard(rows, cols int) *Board {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	clone := NewBoard(b.Rows, b.Cols)
	for row := range b.Cells {
		copy(clone.Cells[row], b.Cells[row])
	}
	return clone
}

// Get returns the cell at the given position, or Empty if out of bounds
func (b *Board) Get(pos Position) Cell {
	if !b.IsValidPosition(pos) {
		return Empty
	}
	return b.Cells[pos.Y][pos.X]
}

// Set writes a cell at the given position. Out of bounds writes are ignored.
func (b *Board) Set(pos Position, cell Cell) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.Y][pos.X] = cell
	}
}

// IsEmpty returns true if the cell at the given position is empty
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == Empty
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Y >= 0 && pos.Y < b.Rows && pos.X >= 0 && pos.X < b.Cols
}

// IsRowFull returns true if every cell in the row is occupied
func (b *Board) IsRowFull(row int) bool {
	if row < 0 || row >= b.Rows {
		return false
	}
	for _, cell := range b.Cells[row] {
		if cell == Empty {
			return false
		}
	}
	return true
}

// FilledCount returns the number of occupied cells
func (b *Board) FilledCount() int {
	count := 0
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			if b.Cells[row][col] != Empty {
				count++
			}
		}
	}
	return count
}

// GetRow returns a copy of the given row
func (b *Board) GetRow(row int) []Cell {
	if row < 0 || row >= b.Rows {
		return nil
	}
	result := make([]Cell, b.Cols)
	copy(result, b.Cells[row])
	return result
}

// Equal reports whether two boards have the same size and contents
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Rows != other.Rows || b.Cols != other.Cols {
		return false
	}
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			if b.Cells[row][col] != other.Cells[row][col] {
				return false
			}
		}
	}
	return true
}
