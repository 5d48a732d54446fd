package catalog

import "github.com/mcoot/blockdrop/internal/model"

// Color ids of the standard kinds
const (
	ColorI model.Cell = iota + 1
	ColorJ
	ColorL
	ColorO
	ColorS
	ColorT
	ColorZ
)

// Default returns the seven standard kinds. O has a single frame, the rest
// have four frames in clockwise order.
func Default() *Catalog {
	return MustNew(StandardDefinitions())
}

// StandardDefinitions returns the definitions behind Default
func StandardDefinitions() []Definition {
	return []Definition{
		{Kind: model.KindI, Frames: Rotations(fill(ColorI,
			"....",
			"####",
			"....",
			"....",
		), 4)},
		{Kind: model.KindJ, Frames: Rotations(fill(ColorJ,
			"#..",
			"###",
			"...",
		), 4)},
		{Kind: model.KindL, Frames: Rotations(fill(ColorL,
			"..#",
			"###",
			"...",
		), 4)},
		{Kind: model.KindO, Frames: Rotations(fill(ColorO,
			"##",
			"##",
		), 1)},
		{Kind: model.KindS, Frames: Rotations(fill(ColorS,
			".##",
			"##.",
			"...",
		), 4)},
		{Kind: model.KindT, Frames: Rotations(fill(ColorT,
			".#.",
			"###",
			"...",
		), 4)},
		{Kind: model.KindZ, Frames: Rotations(fill(ColorZ,
			"##.",
			".##",
			"...",
		), 4)},
	}
}

// RotateClockwise returns a new square frame rotated a quarter turn clockwise
func RotateClockwise(f model.Frame) model.Frame {
	size := len(f)
	rotated := make(model.Frame, size)
	for i := range rotated {
		rotated[i] = make([]model.Cell, size)
	}
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			rotated[j][size-1-i] = f[i][j]
		}
	}
	return rotated
}

// Rotations returns count frames starting at base, each a clockwise turn of the previous
func Rotations(base model.Frame, count int) []model.Frame {
	frames := make([]model.Frame, 0, count)
	current := base.Clone()
	for i := 0; i < count; i++ {
		frames = append(frames, current)
		current = RotateClockwise(current)
	}
	return frames
}

// fill builds a frame from rows where '#' is a filled cell
func fill(color model.Cell, rows ...string) model.Frame {
	frame := make(model.Frame, len(rows))
	for i, row := range rows {
		frame[i] = make([]model.Cell, len(row))
		for j, ch := range row {
			if ch == '#' {
				frame[i][j] = color
			}
		}
	}
	return frame
}
