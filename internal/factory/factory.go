package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/loop"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/notify"
	"github.com/mcoot/blockdrop/internal/services/bot"
	"github.com/mcoot/blockdrop/internal/services/catalog"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/services/scoring"
	"github.com/mcoot/blockdrop/internal/storage"
	"github.com/mcoot/blockdrop/internal/storage/memory"
)

// App contains all wired application components for one game session.
// Its dispatcher can be run once; build a new App for each session.
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random // Piece generator
	BotRandom random.Random // Bot strategies

	// Services
	Catalog    *catalog.Catalog
	Policy     scoring.Policy
	Engine     *game.Engine
	ScoreHub   *notify.Hub
	Dispatcher *loop.Dispatcher
	Scheduler  *loop.Scheduler
	BotService *bot.Service

	logger *slog.Logger

	mu    sync.Mutex
	label string
}

// Config holds configuration for the application factory
type Config struct {
	// Game holds engine settings (optional)
	// If zero value, defaults to game.DefaultConfig()
	Game game.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Storage records finished games (optional)
	// If nil, a fresh in-memory store is used. Share one store between
	// apps to collect a leaderboard.
	Storage storage.Storage
	// Seed fixes the piece sequence of every game (optional)
	// If zero, each game is seeded from its start time
	Seed uint64
	// QueueSize is the dispatcher's command buffer (optional)
	QueueSize int
}

// botSeedMask derives the bot seed from a fixed game seed
const botSeedMask = 0x5bd1e995

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store := cfg.Storage
	if store == nil {
		store = memory.New()
	}

	gameCfg := cfg.Game
	if gameCfg == (game.Config{}) {
		gameCfg = game.DefaultConfig()
	}

	// Create external dependencies. Bots draw from their own source so
	// their choices never shift the piece sequence.
	clk := clock.New()
	rnd := random.NewFromTime()
	botRnd := random.NewFromTime()
	var opts []game.Option
	if cfg.Seed != 0 {
		rnd = random.New(cfg.Seed)
		botRnd = random.New(cfg.Seed ^ botSeedMask)
		opts = append(opts, game.WithSeed(cfg.Seed))
	}

	return newWithDependencies(store, clk, rnd, botRnd, gameCfg, cfg.QueueSize, logger, opts...)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	botRnd random.Random,
	gameCfg game.Config,
	queueSize int,
	logger *slog.Logger,
	opts ...game.Option,
) (*App, error) {
	cat := catalog.Default()
	policy := scoring.Default()
	hub := notify.NewHub(logger)

	opts = append(opts, game.WithScorePublisher(hub))
	engine, err := game.NewEngine(gameCfg, cat, policy, rnd, clk, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	dispatcher := loop.NewDispatcher(engine, queueSize, logger)
	scheduler, err := loop.NewScheduler(dispatcher, clk, gameCfg.GravityInterval, logger)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	botService := bot.NewService(bot.DefaultStrategies(botRnd, cat), logger)

	app := &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		BotRandom:  botRnd,
		Catalog:    cat,
		Policy:     policy,
		Engine:     engine,
		ScoreHub:   hub,
		Dispatcher: dispatcher,
		Scheduler:  scheduler,
		BotService: botService,
		logger:     logger.With(slog.String("component", "app")),
	}
	engine.OnGameOver(app.recordSummary)
	return app, nil
}

// recordSummary saves every finished game. It runs on the dispatcher goroutine.
func (a *App) recordSummary(event model.GameOverEvent) error {
	summary := event.Summary()
	a.mu.Lock()
	summary.Strategy = a.label
	a.mu.Unlock()

	if err := a.Storage.SaveSummary(context.Background(), summary); err != nil {
		a.logger.Error("failed to save game summary",
			slog.String("game_id", string(event.GameID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// SetLabel tags summaries recorded from now on, e.g. with a bot strategy name
func (a *App) SetLabel(label string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.label = label
}

// PlayBot runs one complete game: the dispatcher, the gravity scheduler and
// the named bot strategy run together until the game ends or maxPieces
// pieces have landed. The summary is recorded in Storage.
func (a *App) PlayBot(ctx context.Context, strategy string, maxPieces int) (model.Stats, error) {
	if _, err := a.BotService.Strategy(strategy); err != nil {
		return model.Stats{}, err
	}
	a.SetLabel(strategy)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Dispatcher.Run(gctx)
	})

	var stats model.Stats
	g.Go(func() error {
		defer a.Dispatcher.Close()
		defer a.Scheduler.Stop()

		if _, err := a.Dispatcher.Submit(gctx, model.UserCommand(model.CommandStart)); err != nil {
			return err
		}
		a.Scheduler.Start(gctx)

		var err error
		stats, err = a.BotService.Play(gctx, a.Dispatcher, strategy, maxPieces)
		return err
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}
	return stats, nil
}

// Close stops the scheduler and dispatcher and closes the score stream
func (a *App) Close() {
	a.Scheduler.Stop()
	a.Dispatcher.Close()
	a.ScoreHub.Close()
}
