package state

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockdrop/internal/model"
)

type MachineSuite struct {
	suite.Suite
	machine *Machine
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(MachineSuite))
}

func (s *MachineSuite) SetupTest() {
	s.machine = NewMachine()
}

var (
	allStates = []model.GameState{
		model.GameStateMenu, model.GameStatePlaying, model.GameStatePaused, model.GameStateGameOver,
	}
	allEvents = []model.StateEvent{
		model.EventStart, model.EventPause, model.EventResume, model.EventGameOver,
	}
)

func (s *MachineSuite) TestStartsInMenu() {
	s.Equal(model.GameStateMenu, s.machine.State())
	s.False(s.machine.CanAcceptInput())
	s.False(s.machine.CanUpdateGame())
}

func (s *MachineSuite) TestTransitionTable() {
	expected := map[model.GameState]map[model.StateEvent]model.GameState{
		model.GameStateMenu: {
			model.EventStart: model.GameStatePlaying,
		},
		model.GameStatePlaying: {
			model.EventPause:    model.GameStatePaused,
			model.EventGameOver: model.GameStateGameOver,
		},
		model.GameStatePaused: {
			model.EventResume: model.GameStatePlaying,
		},
		model.GameStateGameOver: {
			model.EventStart: model.GameStatePlaying,
		},
	}

	for _, from := range allStates {
		for _, event := range allEvents {
			to, ok := Next(from, event)
			want, legal := expected[from][event]
			if legal {
				s.True(ok, "%s --%s-->", from, event)
				s.Equal(want, to, "%s --%s-->", from, event)
			} else {
				s.False(ok, "%s --%s--> should be a no-op", from, event)
				s.Equal(from, to)
			}
		}
	}
}

func (s *MachineSuite) TestFullLifecycle() {
	s.True(s.machine.Fire(model.EventStart))
	s.Equal(model.GameStatePlaying, s.machine.State())
	s.True(s.machine.CanAcceptInput())
	s.True(s.machine.CanUpdateGame())

	s.True(s.machine.Fire(model.EventPause))
	s.False(s.machine.CanUpdateGame())

	s.False(s.machine.Fire(model.EventPause))
	s.Equal(model.GameStatePaused, s.machine.State())

	s.True(s.machine.Fire(model.EventResume))
	s.True(s.machine.Fire(model.EventGameOver))
	s.Equal(model.GameStateGameOver, s.machine.State())
	s.False(s.machine.CanAcceptInput())

	s.True(s.machine.Fire(model.EventStart))
	s.Equal(model.GameStatePlaying, s.machine.State())
}

func (s *MachineSuite) TestGameOverFromMenuIsNoOp() {
	s.False(s.machine.Fire(model.EventGameOver))
	s.Equal(model.GameStateMenu, s.machine.State())
}

func (s *MachineSuite) TestReset() {
	s.machine.Fire(model.EventStart)
	s.machine.Reset()
	s.Equal(model.GameStateMenu, s.machine.State())
}

func (s *MachineSuite) TestOnlyPlayingAllowsUpdates() {
	for _, st := range allStates {
		m := &Machine{current: st}
		s.Equal(st == model.GameStatePlaying, m.CanUpdateGame(), "state %s", st)
		s.Equal(st == model.GameStatePlaying, m.CanAcceptInput(), "state %s", st)
	}
}
