package catalog

import (
	"fmt"

	"github.com/mcoot/blockdrop/internal/model"
)

// Definition registers one piece kind with its ordered rotation frames
type Definition struct {
	Kind   model.PieceKind
	Frames []model.Frame
}

// Catalog holds immutable piece geometry. Every accessor returns copies.
type Catalog struct {
	kinds  []model.PieceKind
	frames map[model.PieceKind][]model.Frame
}

// New validates the definitions and builds a catalog.
// Frames must be square and well formed, and every kind needs at least one frame.
func New(defs []Definition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, model.ErrEmptyRegistry
	}

	c := &Catalog{
		kinds:  make([]model.PieceKind, 0, len(defs)),
		frames: make(map[model.PieceKind][]model.Frame, len(defs)),
	}
	for _, def := range defs {
		if _, exists := c.frames[def.Kind]; exists {
			return nil, fmt.Errorf("duplicate piece kind %q", def.Kind)
		}
		if len(def.Frames) == 0 {
			return nil, fmt.Errorf("kind %s: %w", def.Kind, model.ErrNoFrames)
		}
		frames := make([]model.Frame, len(def.Frames))
		for i, frame := range def.Frames {
			if err := frame.Validate(); err != nil {
				return nil, fmt.Errorf("kind %s frame %d: %w", def.Kind, i, err)
			}
			if frame.Width() != frame.Height() {
				return nil, fmt.Errorf("kind %s frame %d: %w: %dx%d is not square",
					def.Kind, i, model.ErrMalformedFrame, frame.Height(), frame.Width())
			}
			frames[i] = frame.Clone()
		}
		c.kinds = append(c.kinds, def.Kind)
		c.frames[def.Kind] = frames
	}
	return c, nil
}

// MustNew is like New but panics on invalid definitions
func MustNew(defs []Definition) *Catalog {
	c, err := New(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// Kinds returns the registered kinds in registration order
func (c *Catalog) Kinds() []model.PieceKind {
	result := make([]model.PieceKind, len(c.kinds))
	copy(result, c.kinds)
	return result
}

// FramesFor returns a fresh copy of the kind's rotation frames
func (c *Catalog) FramesFor(kind model.PieceKind) ([]model.Frame, error) {
	frames, ok := c.frames[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownKind, kind)
	}
	result := make([]model.Frame, len(frames))
	for i, frame := range frames {
		result[i] = frame.Clone()
	}
	return result, nil
}

// Frame returns a copy of a single rotation frame.
// The rotation index wraps modulo the kind's frame count.
func (c *Catalog) Frame(kind model.PieceKind, rotation int) (model.Frame, error) {
	frames, ok := c.frames[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownKind, kind)
	}
	idx := rotation % len(frames)
	if idx < 0 {
		idx += len(frames)
	}
	return frames[idx].Clone(), nil
}

// FrameCount returns the number of rotation frames, or 0 for an unknown kind
func (c *Catalog) FrameCount(kind model.PieceKind) int {
	return len(c.frames[kind])
}
