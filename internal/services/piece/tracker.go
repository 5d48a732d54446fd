package piece

import "github.com/mcoot/blockdrop/internal/model"

// Tracker holds the anchor of the active piece.
// Candidate queries never change state; only Commit and Reset do.
type Tracker struct {
	pos model.Position
}

// NewTracker creates a tracker anchored at the origin
func NewTracker() *Tracker {
	return &Tracker{}
}

// Current returns the committed anchor
func (t *Tracker) Current() model.Position {
	return t.pos
}

// Down returns the anchor one row lower
func (t *Tracker) Down() model.Position {
	return model.Position{X: t.pos.X, Y: t.pos.Y + 1}
}

// Left returns the anchor one column to the left
func (t *Tracker) Left() model.Position {
	return model.Position{X: t.pos.X - 1, Y: t.pos.Y}
}

// Right returns the anchor one column to the right
func (t *Tracker) Right() model.Position {
	return model.Position{X: t.pos.X + 1, Y: t.pos.Y}
}

// Commit moves the anchor to pos
func (t *Tracker) Commit(pos model.Position) {
	t.pos = pos
}

// Reset places the anchor at (x, y)
func (t *Tracker) Reset(x, y int) {
	t.pos = model.Position{X: x, Y: y}
}
