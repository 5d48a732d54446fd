package spawn

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/mcoot/blockdrop/internal/middleware"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/services/generator"
	"github.com/mcoot/blockdrop/internal/services/piece"
	"github.com/mcoot/blockdrop/internal/services/state"
)

// Observer is notified once per game when the game ends.
// A returned error or panic is logged and does not affect other observers.
// Observers run on the goroutine that drives the engine, after the engine
// has settled into GameOver. They may call the engine directly (for example
// to start a new game) but must not wait on a loop.Dispatcher that is
// serving that same goroutine.
type Observer func(event model.GameOverEvent) error

// Result describes a spawn attempt
type Result struct {
	GameOver bool
	Kind     model.PieceKind
	Position model.Position
}

type registration struct {
	id       int
	observer Observer
}

// Controller places the next piece at the top of the board and ends the
// game when it does not fit
type Controller struct {
	generator *generator.Generator
	rotation  *piece.Rotation
	tracker   *piece.Tracker
	machine   *state.Machine
	logger    *slog.Logger

	mu        sync.Mutex
	observers []registration
	nextID    int
	notified  bool
}

// NewController creates a new SpawnController
func NewController(
	gen *generator.Generator,
	rotation *piece.Rotation,
	tracker *piece.Tracker,
	machine *state.Machine,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		generator: gen,
		rotation:  rotation,
		tracker:   tracker,
		machine:   machine,
		logger:    logger.With(slog.String("component", "spawn")),
	}
}

// Spawn draws the next kind and anchors it centered in the top row.
// If the frame collides there the piece is not made active and the machine
// moves to GameOver. Observers are not called; the caller dispatches once
// its own state is final.
func (c *Controller) Spawn(b *model.Board) (Result, error) {
	kind := c.generator.Take()
	if err := c.rotation.Assign(kind); err != nil {
		return Result{}, err
	}

	frame := c.rotation.Current()
	x := (b.Cols - frame.Width()) / 2
	c.tracker.Reset(x, 0)
	pos := c.tracker.Current()

	if board.Collides(b, frame, pos) {
		c.logger.Debug("spawn blocked",
			slog.String("kind", string(kind)),
			slog.Int("x", pos.X),
			slog.Int("y", pos.Y),
		)
		c.machine.Fire(model.EventGameOver)
		return Result{GameOver: true, Kind: kind, Position: pos}, nil
	}

	return Result{Kind: kind, Position: pos}, nil
}

// Subscribe registers an observer and returns a function that removes it.
// Safe to call from any goroutine, including from inside an observer.
func (c *Controller) Subscribe(observer Observer) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.observers = append(c.observers, registration{id: id, observer: observer})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.observers = slices.DeleteFunc(c.observers, func(r registration) bool {
			return r.id == id
		})
	}
}

// Dispatch delivers event to every observer unless this game has already
// been reported. Returns false if delivery was skipped.
func (c *Controller) Dispatch(event model.GameOverEvent) bool {
	c.mu.Lock()
	if c.notified {
		c.mu.Unlock()
		return false
	}
	c.notified = true
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	failed := 0
	for _, reg := range observers {
		err := middleware.Recover(c.logger, "game_over_observer", func() error {
			return reg.observer(event)
		})
		if err != nil {
			failed++
			c.logger.Warn("game over observer failed",
				slog.String("game_id", string(event.GameID)),
				slog.String("error", err.Error()),
			)
		}
	}

	c.logger.Debug("game over dispatched",
		slog.String("game_id", string(event.GameID)),
		slog.Int("observers", len(observers)),
		slog.Int("failed", failed),
	)
	return true
}

// Reset re-arms game-over delivery for a new game
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notified = false
}

// ObserverCount returns the number of registered observers
func (c *Controller) ObserverCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.observers)
}
