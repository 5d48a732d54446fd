package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ModelSuite struct {
	suite.Suite
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}

func (s *ModelSuite) TestBoardBounds() {
	b := NewBoard(4, 3)

	b.Set(Position{X: 2, Y: 3}, 5)
	b.Set(Position{X: 3, Y: 0}, 5)
	b.Set(Position{X: 0, Y: -1}, 5)

	s.Equal(Cell(5), b.Get(Position{X: 2, Y: 3}))
	s.Equal(Empty, b.Get(Position{X: 3, Y: 0}))
	s.Equal(1, b.FilledCount())
}

func (s *ModelSuite) TestRowFull() {
	b := NewBoard(2, 2)
	b.Set(Position{X: 0, Y: 1}, 1)
	s.False(b.IsRowFull(1))

	b.Set(Position{X: 1, Y: 1}, 2)
	s.True(b.IsRowFull(1))
	s.False(b.IsRowFull(2))
}

func (s *ModelSuite) TestCloneIsIndependent() {
	b := NewBoard(2, 2)
	clone := b.Clone()
	clone.Set(Position{X: 1, Y: 1}, 3)

	s.True(b.IsEmpty(Position{X: 1, Y: 1}))
	s.False(b.Equal(clone))
}

func (s *ModelSuite) TestCellsEncodeAsNumbers() {
	b := NewBoard(1, 3)
	b.Set(Position{X: 1, Y: 0}, 7)

	data, err := json.Marshal(b)
	s.Require().NoError(err)
	s.JSONEq(`{"rows":1,"cols":3,"cells":[[0,7,0]]}`, string(data))

	var decoded Board
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.True(b.Equal(&decoded))
}

func (s *ModelSuite) TestFrameValidate() {
	s.NoError(Frame{{1, 0}, {1, 1}}.Validate())
	s.ErrorIs(Frame{}.Validate(), ErrMalformedFrame)
	s.ErrorIs(Frame{{1, 0}, {1}}.Validate(), ErrMalformedFrame)
	s.ErrorIs(Frame{{0, 0}}.Validate(), ErrMalformedFrame)
}

func (s *ModelSuite) TestParseKind() {
	kind, err := ParseKind(" t ")
	s.Require().NoError(err)
	s.Equal(KindT, kind)

	_, err = ParseKind("Q")
	s.ErrorIs(err, ErrUnknownKind)
}

func (s *ModelSuite) TestGameOverSummary() {
	event := GameOverEvent{GameID: "g", Score: 10, Lines: 2, Pieces: 7}
	summary := event.Summary()

	s.Equal(GameID("g"), summary.ID)
	s.Equal(Stats{Score: 10, Lines: 2, Pieces: 7}, summary.Stats)
	s.Empty(summary.Strategy)
}
