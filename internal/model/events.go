package model

import "time"

// GameOverEvent is pushed to observers once per game when a spawn collides
type GameOverEvent struct {
	GameID    GameID
	Score     int
	Lines     int
	Pieces    int
	StartedAt time.Time
	EndedAt   time.Time
}

// Summary converts the event to a storable record
func (e GameOverEvent) Summary() *GameSummary {
	return &GameSummary{
		ID:        e.GameID,
		Stats:     Stats{Score: e.Score, Lines: e.Lines, Pieces: e.Pieces},
		StartedAt: e.StartedAt,
		EndedAt:   e.EndedAt,
	}
}

// ScoreEvent is published whenever the score changes or resets
type ScoreEvent struct {
	GameID GameID
	Score  int
	Delta  int // 0 on reset
	At     time.Time
}
