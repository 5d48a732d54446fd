package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/services/catalog"
	"github.com/mcoot/blockdrop/internal/services/generator"
	"github.com/mcoot/blockdrop/internal/services/piece"
	"github.com/mcoot/blockdrop/internal/services/scoring"
	"github.com/mcoot/blockdrop/internal/services/spawn"
	"github.com/mcoot/blockdrop/internal/services/state"
)

// ScorePublisher receives every score change
type ScorePublisher interface {
	Publish(event model.ScoreEvent)
}

// Option configures an Engine
type Option func(*Engine)

// WithScorePublisher streams score changes to p
func WithScorePublisher(p ScorePublisher) Option {
	return func(e *Engine) {
		e.publisher = p
	}
}

// WithIDGenerator overrides how game IDs are minted
func WithIDGenerator(fn func() model.GameID) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithSeed makes every new game draw the same piece sequence.
// Without it, or with a seed of 0, each game is seeded from its start time.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// Engine owns the board, the active piece and the score.
// It is not safe for concurrent use; drive it from a single goroutine
// such as loop.Dispatcher.
type Engine struct {
	cfg     Config
	catalog *catalog.Catalog
	policy  scoring.Policy
	clock   clock.Clock
	logger  *slog.Logger

	generator *generator.Generator
	rotation  *piece.Rotation
	tracker   *piece.Tracker
	machine   *state.Machine
	spawner   *spawn.Controller

	board     *model.Board
	hasActive bool
	gameID    model.GameID
	startedAt time.Time
	stats     model.Stats

	publisher ScorePublisher
	newID     func() model.GameID
	seed      uint64
}

// NewEngine validates the configuration and builds an engine in the Menu state
func NewEngine(
	cfg Config,
	cat *catalog.Catalog,
	policy scoring.Policy,
	rnd random.Random,
	clk clock.Clock,
	logger *slog.Logger,
	opts ...Option,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := generator.New(cat.Kinds(), rnd, cfg.Lookahead)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	logger = logger.With(slog.String("component", "engine"))
	rotation := piece.NewRotation(cat)
	tracker := piece.NewTracker()
	machine := state.NewMachine()

	e := &Engine{
		cfg:       cfg,
		catalog:   cat,
		policy:    policy,
		clock:     clk,
		logger:    logger,
		generator: gen,
		rotation:  rotation,
		tracker:   tracker,
		machine:   machine,
		spawner:   spawn.NewController(gen, rotation, tracker, machine, logger),
		board:     model.NewBoard(cfg.Rows, cfg.Cols),
		newID:     func() model.GameID { return model.GameID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewGame clears the board and score, reseeds the generator, moves to
// Playing and spawns the first piece. A running game is discarded without
// a game-over notification.
func (e *Engine) NewGame() model.ViewSnapshot {
	switch e.machine.State() {
	case model.GameStatePlaying, model.GameStatePaused:
		e.machine.Reset()
	}

	e.board = model.NewBoard(e.cfg.Rows, e.cfg.Cols)
	e.stats = model.Stats{}
	e.hasActive = false
	e.gameID = e.newID()
	e.startedAt = e.clock.Now()
	seed := e.seed
	if seed == 0 {
		seed = uint64(e.startedAt.UnixNano())
	}
	e.generator.Reset(seed)
	e.spawner.Reset()
	e.machine.Fire(model.EventStart)

	e.logger.Info("game started",
		slog.String("game_id", string(e.gameID)),
		slog.Int("rows", e.cfg.Rows),
		slog.Int("cols", e.cfg.Cols),
	)
	e.publish(0)
	e.spawnNext()

	return e.Snapshot()
}

// MoveDown moves the active piece one row. If it cannot move it lands:
// it is merged, full rows are cleared and scored, and the next piece spawns.
func (e *Engine) MoveDown(source model.Source) bool {
	moved, _ := e.moveDown(source)
	return moved
}

// MoveLeft shifts the active piece one column left if legal
func (e *Engine) MoveLeft() bool {
	return e.shift(e.tracker.Left())
}

// MoveRight shifts the active piece one column right if legal
func (e *Engine) MoveRight() bool {
	return e.shift(e.tracker.Right())
}

// Rotate turns the active piece clockwise in place if legal.
// There is no wall kick: a colliding rotation is rejected.
func (e *Engine) Rotate() bool {
	if !e.canMove() {
		return false
	}
	frame, index := e.rotation.Candidate()
	if board.Collides(e.board, frame, e.tracker.Current()) {
		return false
	}
	e.rotation.Commit(index)
	return true
}

// HardDrop drops the active piece to its landing row, credits one user drop
// per row descended, then lands it. The outcome is nil unless rows cleared.
func (e *Engine) HardDrop() (*model.ClearOutcome, model.ViewSnapshot) {
	_, outcome := e.hardDrop()
	return outcome, e.Snapshot()
}

// Pause freezes the game. Returns false if it was not playing.
func (e *Engine) Pause() bool {
	return e.machine.Fire(model.EventPause)
}

// Resume unfreezes a paused game
func (e *Engine) Resume() bool {
	return e.machine.Fire(model.EventResume)
}

// Abandon ends a playing or paused game immediately and notifies
// game-over observers
func (e *Engine) Abandon() bool {
	if e.machine.State() == model.GameStatePaused {
		e.machine.Fire(model.EventResume)
	}
	if !e.machine.Fire(model.EventGameOver) {
		return false
	}
	e.hasActive = false
	e.logger.Info("game abandoned",
		slog.String("game_id", string(e.gameID)),
		slog.Int("score", e.stats.Score),
	)
	e.spawner.Dispatch(e.gameOverEvent())
	return true
}

// Apply routes a command and returns its result with a fresh snapshot
func (e *Engine) Apply(cmd model.Command) (model.CommandResult, error) {
	var result model.CommandResult

	switch cmd.Type {
	case model.CommandDown:
		result.Moved, result.Outcome = e.moveDown(cmd.Source)
	case model.CommandLeft:
		result.Moved = e.MoveLeft()
	case model.CommandRight:
		result.Moved = e.MoveRight()
	case model.CommandRotate:
		result.Moved = e.Rotate()
	case model.CommandHardDrop:
		result.Moved, result.Outcome = e.hardDrop()
	case model.CommandPause:
		result.Moved = e.Pause()
	case model.CommandResume:
		result.Moved = e.Resume()
	case model.CommandAbandon:
		result.Moved = e.Abandon()
	case model.CommandStart:
		e.NewGame()
		result.Moved = true
	default:
		return model.CommandResult{Snapshot: e.Snapshot()},
			fmt.Errorf("%w: %q", model.ErrUnknownCommand, cmd.Type)
	}

	result.Snapshot = e.Snapshot()
	return result, nil
}

// OnGameOver registers an observer and returns a function that removes it
func (e *Engine) OnGameOver(observer spawn.Observer) func() {
	return e.spawner.Subscribe(observer)
}

// State returns the current game state
func (e *Engine) State() model.GameState {
	return e.machine.State()
}

// CanAcceptInput reports whether user commands currently have an effect
func (e *Engine) CanAcceptInput() bool {
	return e.machine.CanAcceptInput()
}

// Score returns the current score
func (e *Engine) Score() int {
	return e.stats.Score
}

// Stats returns the running totals
func (e *Engine) Stats() model.Stats {
	return e.stats
}

// GameID returns the current game's ID, empty before the first game
func (e *Engine) GameID() model.GameID {
	return e.gameID
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Catalog returns the piece catalog the engine draws from
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

func (e *Engine) canMove() bool {
	return e.machine.CanUpdateGame() && e.hasActive
}

func (e *Engine) shift(candidate model.Position) bool {
	if !e.canMove() {
		return false
	}
	if board.Collides(e.board, e.rotation.Current(), candidate) {
		return false
	}
	e.tracker.Commit(candidate)
	return true
}

func (e *Engine) moveDown(source model.Source) (bool, *model.ClearOutcome) {
	if !e.canMove() {
		return false, nil
	}
	candidate := e.tracker.Down()
	if !board.Collides(e.board, e.rotation.Current(), candidate) {
		e.tracker.Commit(candidate)
		e.addScore(e.policy.PointsForDrop(source, true))
		return true, nil
	}
	return false, e.land()
}

func (e *Engine) hardDrop() (bool, *model.ClearOutcome) {
	if !e.canMove() {
		return false, nil
	}
	frame := e.rotation.Current()
	rows := 0
	for {
		candidate := e.tracker.Down()
		if board.Collides(e.board, frame, candidate) {
			break
		}
		e.tracker.Commit(candidate)
		e.addScore(e.policy.PointsForDrop(model.SourceUser, true))
		rows++
	}
	return rows > 0, e.land()
}

// land merges the active piece, clears full rows, scores them and spawns
// the next piece. Returns the clear outcome only when rows were removed.
func (e *Engine) land() *model.ClearOutcome {
	e.board = board.Merge(e.board, e.rotation.Current(), e.tracker.Current())
	e.hasActive = false
	e.stats.Pieces++

	outcome := board.ClearFullRows(e.board)
	e.board = outcome.Board
	outcome.ScoreBonus = e.policy.PointsForClear(outcome.LinesRemoved)
	e.stats.Lines += outcome.LinesRemoved
	e.addScore(outcome.ScoreBonus)

	e.logger.Debug("piece landed",
		slog.String("game_id", string(e.gameID)),
		slog.String("kind", string(e.rotation.Kind())),
		slog.Int("lines", outcome.LinesRemoved),
		slog.Int("score", e.stats.Score),
	)

	var result *model.ClearOutcome
	if outcome.LinesRemoved > 0 {
		outcome.Board = e.board.Clone()
		result = &outcome
	}

	// Last: a game-over observer may start a new game
	e.spawnNext()
	return result
}

// spawnNext activates the next piece. On game over the engine state is
// settled before observers run, so an observer can restart the game.
func (e *Engine) spawnNext() {
	result, err := e.spawner.Spawn(e.board)
	if err != nil {
		// Catalog kinds are validated at construction, so this is a wiring bug
		e.logger.Error("spawn failed",
			slog.String("game_id", string(e.gameID)),
			slog.String("error", err.Error()),
		)
		e.hasActive = false
		e.machine.Fire(model.EventGameOver)
		e.spawner.Dispatch(e.gameOverEvent())
		return
	}
	e.hasActive = !result.GameOver
	if !result.GameOver {
		return
	}

	e.logger.Info("game over",
		slog.String("game_id", string(e.gameID)),
		slog.Int("score", e.stats.Score),
		slog.Int("lines", e.stats.Lines),
		slog.Int("pieces", e.stats.Pieces),
	)
	e.spawner.Dispatch(e.gameOverEvent())
}

func (e *Engine) gameOverEvent() model.GameOverEvent {
	return model.GameOverEvent{
		GameID:    e.gameID,
		Score:     e.stats.Score,
		Lines:     e.stats.Lines,
		Pieces:    e.stats.Pieces,
		StartedAt: e.startedAt,
		EndedAt:   e.clock.Now(),
	}
}

func (e *Engine) addScore(delta int) {
	if delta <= 0 {
		return
	}
	e.stats.Score += delta
	e.publish(delta)
}

func (e *Engine) publish(delta int) {
	if e.publisher == nil {
		return
	}
	e.publisher.Publish(model.ScoreEvent{
		GameID: e.gameID,
		Score:  e.stats.Score,
		Delta:  delta,
		At:     e.clock.Now(),
	})
}
