package model

import (
	"fmt"
	"strings"
)

// PieceKind identifies one of the seven brick shapes
type PieceKind string

const (
	KindI PieceKind = "I"
	KindJ PieceKind = "J"
	KindL PieceKind = "L"
	KindO PieceKind = "O"
	KindS PieceKind = "S"
	KindT PieceKind = "T"
	KindZ PieceKind = "Z"
)

// AllKinds returns the seven standard kinds in canonical order
func AllKinds() []PieceKind {
	return []PieceKind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
}

// ParseKind converts a string such as "t" or "T" to a PieceKind
func ParseKind(s string) (PieceKind, error) {
	want := PieceKind(strings.ToUpper(strings.TrimSpace(s)))
	for _, k := range AllKinds() {
		if k == want {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Frame is one rotation state of a piece, indexed [row][col]
type Frame [][]Cell

// Clone returns a deep copy of the frame
func (f Frame) Clone() Frame {
	if f == nil {
		return nil
	}
	clone := make(Frame, len(f))
	for i, row := range f {
		clone[i] = make([]Cell, len(row))
		copy(clone[i], row)
	}
	return clone
}

// Height returns the number of rows in the frame
func (f Frame) Height() int {
	return len(f)
}

// Width returns the number of columns in the frame
func (f Frame) Width() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// FilledCount returns the number of occupied cells
func (f Frame) FilledCount() int {
	count := 0
	for _, row := range f {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}
	return count
}

// Validate checks that the frame is non-empty, rectangular and has at least one filled cell
func (f Frame) Validate() error {
	if len(f) == 0 || len(f[0]) == 0 {
		return fmt.Errorf("%w: empty frame", ErrMalformedFrame)
	}
	width := len(f[0])
	for i, row := range f {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedFrame, i, len(row), width)
		}
	}
	if f.FilledCount() == 0 {
		return fmt.Errorf("%w: no filled cells", ErrMalformedFrame)
	}
	return nil
}

// Equal reports whether two frames have identical contents
func (f Frame) Equal(other Frame) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if len(f[i]) != len(other[i]) {
			return false
		}
		for j := range f[i] {
			if f[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// ActivePiece is the falling piece under player control
type ActivePiece struct {
	Kind     PieceKind
	Rotation int      // Index into the kind's rotation frames
	Anchor   Position // Board coordinate of the frame's top-left cell
}
