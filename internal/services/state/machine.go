package state

import "github.com/mcoot/blockdrop/internal/model"

type transition struct {
	from  model.GameState
	event model.StateEvent
}

// transitions lists every legal (state, event) pair. Anything else is a no-op.
var transitions = map[transition]model.GameState{
	{model.GameStateMenu, model.EventStart}:       model.GameStatePlaying,
	{model.GameStatePlaying, model.EventPause}:    model.GameStatePaused,
	{model.GameStatePaused, model.EventResume}:    model.GameStatePlaying,
	{model.GameStatePlaying, model.EventGameOver}: model.GameStateGameOver,
	{model.GameStateGameOver, model.EventStart}:   model.GameStatePlaying,
}

// Next returns the state reached by applying event in from, and whether
// the pair is a legal transition
func Next(from model.GameState, event model.StateEvent) (model.GameState, bool) {
	to, ok := transitions[transition{from, event}]
	if !ok {
		return from, false
	}
	return to, true
}

// Machine holds the current game state
type Machine struct {
	current model.GameState
}

// NewMachine creates a machine in the Menu state
func NewMachine() *Machine {
	return &Machine{current: model.GameStateMenu}
}

// State returns the current state
func (m *Machine) State() model.GameState {
	return m.current
}

// Fire applies event and reports whether the state changed
func (m *Machine) Fire(event model.StateEvent) bool {
	next, ok := Next(m.current, event)
	if !ok {
		return false
	}
	m.current = next
	return true
}

// Reset returns the machine to Menu
func (m *Machine) Reset() {
	m.current = model.GameStateMenu
}

// CanAcceptInput reports whether user commands are accepted
func (m *Machine) CanAcceptInput() bool {
	return m.current == model.GameStatePlaying
}

// CanUpdateGame reports whether the board may change
func (m *Machine) CanUpdateGame() bool {
	return m.current == model.GameStatePlaying
}
