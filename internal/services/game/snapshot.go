package game

import (
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/board"
)

// Snapshot returns a deep copy of everything the view needs.
// Nothing in it aliases engine storage.
func (e *Engine) Snapshot() model.ViewSnapshot {
	snap := model.ViewSnapshot{
		GameID:     e.gameID,
		State:      e.machine.State(),
		Board:      e.board.Clone(),
		HiddenRows: e.cfg.HiddenRows,
		Stats:      e.stats,
	}

	if e.hasActive {
		frame := e.rotation.Current()
		pos := e.tracker.Current()
		snap.HasActive = true
		snap.Kind = e.rotation.Kind()
		snap.Rotation = e.rotation.Index()
		snap.Frame = frame
		snap.X = pos.X
		snap.Y = pos.Y
		snap.GhostY = board.GhostY(e.board, frame, pos)
	}

	kinds := e.generator.PeekN(e.cfg.Lookahead)
	snap.UpcomingKinds = kinds
	snap.Upcoming = make([]model.Frame, 0, len(kinds))
	for _, kind := range kinds {
		frame, err := e.catalog.Frame(kind, 0)
		if err != nil {
			continue
		}
		snap.Upcoming = append(snap.Upcoming, frame)
	}

	return snap
}

// GhostY returns the landing row of the active piece, or -1 if there is none
func (e *Engine) GhostY() int {
	if !e.hasActive {
		return -1
	}
	return board.GhostY(e.board, e.rotation.Current(), e.tracker.Current())
}

// Board returns a copy of the locked cells
func (e *Engine) Board() *model.Board {
	return e.board.Clone()
}
