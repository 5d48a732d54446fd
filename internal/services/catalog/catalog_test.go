package catalog

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockdrop/internal/model"
)

type CatalogSuite struct {
	suite.Suite
	catalog *Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupTest() {
	s.catalog = Default()
}

// Default catalog tests

func (s *CatalogSuite) TestDefaultRegistersSevenKindsInOrder() {
	s.Equal(model.AllKinds(), s.catalog.Kinds())
}

func (s *CatalogSuite) TestDefaultFrameCounts() {
	for _, kind := range model.AllKinds() {
		expected := 4
		if kind == model.KindO {
			expected = 1
		}
		s.Equal(expected, s.catalog.FrameCount(kind), "kind %s", kind)
	}
}

func (s *CatalogSuite) TestDefaultFramesAreSquareWithFourCells() {
	for _, kind := range model.AllKinds() {
		frames, err := s.catalog.FramesFor(kind)
		s.Require().NoError(err)
		for i, frame := range frames {
			s.Equal(frame.Width(), frame.Height(), "kind %s frame %d", kind, i)
			s.Equal(4, frame.FilledCount(), "kind %s frame %d", kind, i)
		}
	}
}

func (s *CatalogSuite) TestDefaultColorsAreDistinct() {
	seen := make(map[model.Cell]model.PieceKind)
	for _, kind := range model.AllKinds() {
		frame, err := s.catalog.Frame(kind, 0)
		s.Require().NoError(err)
		var color model.Cell
		for _, row := range frame {
			for _, cell := range row {
				if cell != model.Empty {
					color = cell
				}
			}
		}
		s.NotEqual(model.Empty, color)
		_, dup := seen[color]
		s.False(dup, "color %d reused by %s", color, kind)
		seen[color] = kind
	}
}

func (s *CatalogSuite) TestTFramesRotateClockwise() {
	frames, err := s.catalog.FramesFor(model.KindT)
	s.Require().NoError(err)

	t := ColorT
	s.Equal(model.Frame{{0, t, 0}, {t, t, t}, {0, 0, 0}}, frames[0])
	s.Equal(model.Frame{{0, t, 0}, {0, t, t}, {0, t, 0}}, frames[1])
	s.Equal(model.Frame{{0, 0, 0}, {t, t, t}, {0, t, 0}}, frames[2])
	s.Equal(model.Frame{{0, t, 0}, {t, t, 0}, {0, t, 0}}, frames[3])
}

// FramesFor tests

func (s *CatalogSuite) TestFramesForReturnsIndependentCopies() {
	first, err := s.catalog.FramesFor(model.KindL)
	s.Require().NoError(err)

	first[0][0][0] = 99
	first[1] = nil

	second, err := s.catalog.FramesFor(model.KindL)
	s.Require().NoError(err)
	s.NotEqual(model.Cell(99), second[0][0][0])
	s.NotNil(second[1])
}

func (s *CatalogSuite) TestFramesForIsValueIdenticalAcrossCalls() {
	for _, kind := range model.AllKinds() {
		first, err := s.catalog.FramesFor(kind)
		s.Require().NoError(err)
		second, err := s.catalog.FramesFor(kind)
		s.Require().NoError(err)
		s.Equal(first, second)
	}
}

func (s *CatalogSuite) TestFramesForUnknownKind() {
	_, err := s.catalog.FramesFor("X")
	s.ErrorIs(err, model.ErrUnknownKind)
}

// Frame tests

func (s *CatalogSuite) TestFrameWrapsRotation() {
	wrapped, err := s.catalog.Frame(model.KindS, 5)
	s.Require().NoError(err)
	direct, err := s.catalog.Frame(model.KindS, 1)
	s.Require().NoError(err)
	s.Equal(direct, wrapped)

	negative, err := s.catalog.Frame(model.KindS, -1)
	s.Require().NoError(err)
	last, err := s.catalog.Frame(model.KindS, 3)
	s.Require().NoError(err)
	s.Equal(last, negative)
}

func (s *CatalogSuite) TestFrameCountUnknownKind() {
	s.Equal(0, s.catalog.FrameCount("X"))
}

// New validation tests

func (s *CatalogSuite) TestNewRejectsEmptyRegistry() {
	_, err := New(nil)
	s.ErrorIs(err, model.ErrEmptyRegistry)
}

func (s *CatalogSuite) TestNewRejectsKindWithoutFrames() {
	_, err := New([]Definition{{Kind: model.KindI}})
	s.ErrorIs(err, model.ErrNoFrames)
}

func (s *CatalogSuite) TestNewRejectsNonRectangularFrame() {
	_, err := New([]Definition{{
		Kind:   model.KindO,
		Frames: []model.Frame{{{1, 1}, {1}}},
	}})
	s.ErrorIs(err, model.ErrMalformedFrame)
}

func (s *CatalogSuite) TestNewRejectsNonSquareFrame() {
	_, err := New([]Definition{{
		Kind:   model.KindI,
		Frames: []model.Frame{{{1, 1, 1, 1}}},
	}})
	s.ErrorIs(err, model.ErrMalformedFrame)
}

func (s *CatalogSuite) TestNewRejectsBlankFrame() {
	_, err := New([]Definition{{
		Kind:   model.KindO,
		Frames: []model.Frame{{{0, 0}, {0, 0}}},
	}})
	s.ErrorIs(err, model.ErrMalformedFrame)
}

func (s *CatalogSuite) TestNewRejectsDuplicateKind() {
	frame := model.Frame{{1}}
	_, err := New([]Definition{
		{Kind: model.KindO, Frames: []model.Frame{frame}},
		{Kind: model.KindO, Frames: []model.Frame{frame}},
	})
	s.Error(err)
}

func (s *CatalogSuite) TestNewCopiesInputFrames() {
	frame := model.Frame{{1, 1}, {1, 1}}
	c, err := New([]Definition{{Kind: model.KindO, Frames: []model.Frame{frame}}})
	s.Require().NoError(err)

	frame[0][0] = 0

	stored, err := c.Frame(model.KindO, 0)
	s.Require().NoError(err)
	s.Equal(model.Cell(1), stored[0][0])
}

func (s *CatalogSuite) TestMustNewPanicsOnInvalidDefinitions() {
	s.Panics(func() { MustNew(nil) })
}

// Rotation helper tests

func (s *CatalogSuite) TestFourClockwiseTurnsRestoreFrame() {
	for _, def := range StandardDefinitions() {
		base := def.Frames[0]
		turned := base
		for i := 0; i < 4; i++ {
			turned = RotateClockwise(turned)
		}
		s.Equal(base, turned, "kind %s", def.Kind)
	}
}

func (s *CatalogSuite) TestRotateClockwiseDoesNotMutateInput() {
	base := model.Frame{{1, 0}, {0, 0}}
	rotated := RotateClockwise(base)

	s.Equal(model.Frame{{1, 0}, {0, 0}}, base)
	s.Equal(model.Frame{{0, 1}, {0, 0}}, rotated)
}
