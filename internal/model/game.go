package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateMenu     GameState = "menu"      // No game started yet
	GameStatePlaying  GameState = "playing"   // Accepting input and gravity
	GameStatePaused   GameState = "paused"    // Frozen until resumed
	GameStateGameOver GameState = "game_over" // Spawn collided, waiting for a new game
)

// StateEvent drives transitions between game states
type StateEvent string

const (
	EventStart    StateEvent = "start"
	EventPause    StateEvent = "pause"
	EventResume   StateEvent = "resume"
	EventGameOver StateEvent = "game_over"
)

// Source tags where a command came from
type Source string

const (
	SourceUser      Source = "user"
	SourceScheduler Source = "scheduler"
)

// CommandType identifies an engine input
type CommandType string

const (
	CommandDown     CommandType = "down"
	CommandLeft     CommandType = "left"
	CommandRight    CommandType = "right"
	CommandRotate   CommandType = "rotate"
	CommandHardDrop CommandType = "hard_drop"
	CommandPause    CommandType = "pause"
	CommandResume   CommandType = "resume"
	CommandStart    CommandType = "start"
	CommandAbandon  CommandType = "abandon"
)

// Command is a single input to the engine
type Command struct {
	Type   CommandType
	Source Source
}

// UserCommand builds a command issued by the player
func UserCommand(t CommandType) Command {
	return Command{Type: t, Source: SourceUser}
}

// GravityCommand builds the down command issued on each scheduler tick
func GravityCommand() Command {
	return Command{Type: CommandDown, Source: SourceScheduler}
}

// ClearOutcome describes the result of compacting full rows
type ClearOutcome struct {
	LinesRemoved int    `json:"lines_removed" yaml:"lines_removed"`
	Board        *Board `json:"-" yaml:"-"`
	ClearedRows  []int  `json:"cleared_rows" yaml:"cleared_rows"` // Ascending indices in the pre-clear board
	ScoreBonus   int    `json:"score_bonus" yaml:"score_bonus"`
}

// Stats are the running totals of a game
type Stats struct {
	Score  int `json:"score" yaml:"score"`
	Lines  int `json:"lines" yaml:"lines"`
	Pieces int `json:"pieces" yaml:"pieces"` // Pieces locked into the board
}

// ViewSnapshot is a read-only projection of the engine for the view layer.
// Every slice in it is a copy.
type ViewSnapshot struct {
	GameID        GameID      `json:"game_id" yaml:"game_id"`
	State         GameState   `json:"state" yaml:"state"`
	HasActive     bool        `json:"has_active" yaml:"has_active"`
	Kind          PieceKind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Rotation      int         `json:"rotation" yaml:"rotation"`
	Frame         Frame       `json:"frame,omitempty" yaml:"frame,omitempty"`
	X             int         `json:"x" yaml:"x"`
	Y             int         `json:"y" yaml:"y"`
	GhostY        int         `json:"ghost_y" yaml:"ghost_y"`
	Upcoming      []Frame     `json:"upcoming" yaml:"upcoming"`
	UpcomingKinds []PieceKind `json:"upcoming_kinds" yaml:"upcoming_kinds"`
	Board         *Board      `json:"board" yaml:"board"`
	HiddenRows    int         `json:"hidden_rows" yaml:"hidden_rows"`
	Stats         Stats       `json:"stats" yaml:"stats"`
}

// CommandResult is returned for every command applied to the engine
type CommandResult struct {
	Moved    bool          `json:"moved" yaml:"moved"`
	Outcome  *ClearOutcome `json:"outcome,omitempty" yaml:"outcome,omitempty"` // Set only when rows were cleared
	Snapshot ViewSnapshot  `json:"snapshot" yaml:"snapshot"`
}

// GameSummary is a lightweight record of a finished game
type GameSummary struct {
	ID        GameID    `json:"id" yaml:"id"`
	Strategy  string    `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Stats     Stats     `json:"stats" yaml:"stats"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	EndedAt   time.Time `json:"ended_at" yaml:"ended_at"`
}
