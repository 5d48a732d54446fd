package render

import (
	"fmt"
	"strings"

	"github.com/mcoot/blockdrop/internal/model"
)

// Cell glyphs
const (
	GlyphEmpty  = '.'
	GlyphLocked = '#'
	GlyphActive = '@'
	GlyphGhost  = '+'
)

// Board draws the visible rows of a snapshot with the active piece and its
// landing preview, followed by the running totals
func Board(snap model.ViewSnapshot) string {
	if snap.Board == nil {
		return ""
	}
	b := snap.Board

	var active, ghost map[model.Position]bool
	if snap.HasActive {
		active = cells(snap.Frame, model.Position{X: snap.X, Y: snap.Y})
		ghost = cells(snap.Frame, model.Position{X: snap.X, Y: snap.GhostY})
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("-", b.Cols) + "+\n"
	sb.WriteString(border)
	for row := max(snap.HiddenRows, 0); row < b.Rows; row++ {
		sb.WriteByte('|')
		for col := 0; col < b.Cols; col++ {
			pos := model.Position{X: col, Y: row}
			switch {
			case active[pos]:
				sb.WriteByte(GlyphActive)
			case b.Cells[row][col] != model.Empty:
				sb.WriteByte(GlyphLocked)
			case ghost[pos]:
				sb.WriteByte(GlyphGhost)
			default:
				sb.WriteByte(GlyphEmpty)
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)

	fmt.Fprintf(&sb, "score %d  lines %d  pieces %d\n", snap.Stats.Score, snap.Stats.Lines, snap.Stats.Pieces)
	if len(snap.UpcomingKinds) > 0 {
		kinds := make([]string, len(snap.UpcomingKinds))
		for i, kind := range snap.UpcomingKinds {
			kinds[i] = string(kind)
		}
		fmt.Fprintf(&sb, "next  %s\n", strings.Join(kinds, " "))
	}
	fmt.Fprintf(&sb, "state %s\n", snap.State)
	return sb.String()
}

// Frame draws a single rotation frame
func Frame(f model.Frame) string {
	var sb strings.Builder
	for _, row := range f {
		for _, cell := range row {
			if cell == model.Empty {
				sb.WriteByte(GlyphEmpty)
			} else {
				sb.WriteByte(GlyphLocked)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Frames draws frames side by side, separated by two spaces and top aligned
func Frames(frames []model.Frame) string {
	height := 0
	for _, f := range frames {
		height = max(height, f.Height())
	}

	var lines []string
	for row := 0; row < height; row++ {
		parts := make([]string, len(frames))
		for i, f := range frames {
			if row < f.Height() {
				parts[i] = strings.TrimSuffix(Frame(f[row:row+1]), "\n")
			} else {
				parts[i] = strings.Repeat(" ", f.Width())
			}
		}
		lines = append(lines, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func cells(f model.Frame, pos model.Position) map[model.Position]bool {
	result := make(map[model.Position]bool)
	for i, row := range f {
		for j, cell := range row {
			if cell != model.Empty {
				result[model.Position{X: pos.X + j, Y: pos.Y + i}] = true
			}
		}
	}
	return result
}
