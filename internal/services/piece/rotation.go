package piece

import (
	"fmt"

	"github.com/mcoot/blockdrop/internal/model"
)

// FrameSource supplies rotation frames for a kind
type FrameSource interface {
	FramesFor(kind model.PieceKind) ([]model.Frame, error)
}

// Rotation tracks the rotation index of the active piece
type Rotation struct {
	source FrameSource
	kind   model.PieceKind
	frames []model.Frame
	index  int
}

// NewRotation creates a rotation controller with no kind assigned
func NewRotation(source FrameSource) *Rotation {
	return &Rotation{source: source}
}

// Assign switches to a new kind and resets the index to 0
func (r *Rotation) Assign(kind model.PieceKind) error {
	frames, err := r.source.FramesFor(kind)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("kind %s: %w", kind, model.ErrNoFrames)
	}
	r.kind = kind
	r.frames = frames
	r.index = 0
	return nil
}

// Candidate returns the next clockwise frame and its index without changing state
func (r *Rotation) Candidate() (model.Frame, int) {
	if len(r.frames) == 0 {
		return nil, 0
	}
	next := (r.index + 1) % len(r.frames)
	return r.frames[next].Clone(), next
}

// Commit makes index the current rotation. Out of range indices are ignored.
func (r *Rotation) Commit(index int) {
	if index >= 0 && index < len(r.frames) {
		r.index = index
	}
}

// Current returns a copy of the current frame, or nil before the first Assign
func (r *Rotation) Current() model.Frame {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[r.index].Clone()
}

// Index returns the current rotation index
func (r *Rotation) Index() int {
	return r.index
}

// Kind returns the assigned kind
func (r *Rotation) Kind() model.PieceKind {
	return r.kind
}

// FrameCount returns the number of frames of the assigned kind
func (r *Rotation) FrameCount() int {
	return len(r.frames)
}
