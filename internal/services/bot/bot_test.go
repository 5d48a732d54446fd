package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockdrop/internal/dependencies/mocks"
	"github.com/mcoot/blockdrop/internal/dependencies/random"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/catalog"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/services/scoring"
	"github.com/mcoot/blockdrop/internal/testutil"
)

// engineDriver drives an engine directly from the test goroutine
type engineDriver struct {
	engine *game.Engine
}

func (d engineDriver) Submit(_ context.Context, cmd model.Command) (model.CommandResult, error) {
	return d.engine.Apply(cmd)
}

func (d engineDriver) Snapshot(_ context.Context) (model.ViewSnapshot, error) {
	return d.engine.Snapshot(), nil
}

type BotSuite struct {
	suite.Suite
	catalog *catalog.Catalog
	random  *mocks.MockRandom
	ctx     context.Context
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotSuite))
}

func (s *BotSuite) SetupTest() {
	s.catalog = catalog.Default()
	s.random = mocks.NewMockRandom()
	s.ctx = context.Background()
}

func (s *BotSuite) newEngine(rnd random.Random) *game.Engine {
	engine, err := game.NewEngine(
		game.DefaultConfig(),
		s.catalog,
		scoring.Default(),
		rnd,
		mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		testutil.NopLogger(),
	)
	s.Require().NoError(err)
	return engine
}

func user(t model.CommandType) model.Command {
	return model.UserCommand(t)
}

// Strategy registry tests

func (s *BotSuite) TestNewStrategyUnknown() {
	_, err := NewStrategy("genius", s.random, s.catalog)
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *BotSuite) TestDefaultStrategies() {
	strategies := DefaultStrategies(s.random, s.catalog)
	s.Len(strategies, 2)
	for name, strategy := range strategies {
		s.Equal(name, strategy.Name())
	}
}

func (s *BotSuite) TestMovesBuildsCommandList() {
	s.Equal([]model.Command{
		user(model.CommandRotate),
		user(model.CommandLeft),
		user(model.CommandLeft),
		user(model.CommandHardDrop),
	}, moves(1, -2))
	s.Equal([]model.Command{user(model.CommandHardDrop)}, moves(0, 0))
}

// RandomStrategy tests

func (s *BotSuite) TestRandomStrategy() {
	s.random.QueueIntn(2, 7)
	strategy := NewRandomStrategy(s.random)
	snap := model.ViewSnapshot{HasActive: true, X: 3, Board: model.NewBoard(22, 10)}

	cmds := strategy.NextMoves(snap)

	s.Equal([]model.Command{
		user(model.CommandRotate),
		user(model.CommandRotate),
		user(model.CommandRight),
		user(model.CommandRight),
		user(model.CommandRight),
		user(model.CommandRight),
		user(model.CommandHardDrop),
	}, cmds)
}

func (s *BotSuite) TestStrategiesIgnoreSnapshotWithoutPiece() {
	s.Nil(NewRandomStrategy(s.random).NextMoves(model.ViewSnapshot{}))
	s.Nil(NewDropStrategy(s.catalog).NextMoves(model.ViewSnapshot{}))
}

// DropStrategy tests

func (s *BotSuite) TestDropStrategyCompletesLine() {
	b := model.NewBoard(22, 10)
	for col := 4; col < 10; col++ {
		b.Cells[21][col] = 9
	}
	frame, err := s.catalog.Frame(model.KindI, 0)
	s.Require().NoError(err)
	snap := model.ViewSnapshot{HasActive: true, Kind: model.KindI, Frame: frame, X: 3, Y: 0, Board: b}

	cmds := NewDropStrategy(s.catalog).NextMoves(snap)

	s.Equal([]model.Command{
		user(model.CommandLeft),
		user(model.CommandLeft),
		user(model.CommandLeft),
		user(model.CommandHardDrop),
	}, cmds)
}

func (s *BotSuite) TestEvaluate() {
	empty := model.NewBoard(4, 4)
	s.Equal(0.0, Evaluate(empty))

	holed := model.NewBoard(4, 4)
	holed.Cells[2][0] = 1 // Hole beneath at row 3
	s.Less(Evaluate(holed), Evaluate(func() *model.Board {
		b := model.NewBoard(4, 4)
		b.Cells[3][0] = 1
		return b
	}()))

	full := model.NewBoard(4, 4)
	for col := 0; col < 4; col++ {
		full.Cells[3][col] = 1
	}
	s.Greater(Evaluate(full), 0.0)
}

// Service tests

func (s *BotSuite) TestPlayUnknownStrategy() {
	service := NewService(DefaultStrategies(s.random, s.catalog), testutil.NopLogger())
	_, err := service.Play(s.ctx, engineDriver{s.newEngine(s.random)}, "genius", 0)
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *BotSuite) TestPlayBeforeGameStartsDoesNothing() {
	service := NewService(DefaultStrategies(s.random, s.catalog), testutil.NopLogger())
	engine := s.newEngine(s.random)

	stats, err := service.Play(s.ctx, engineDriver{engine}, model.BotStrategyDrop, 0)
	s.Require().NoError(err)
	s.Equal(model.Stats{}, stats)
	s.Equal(model.GameStateMenu, engine.State())
}

func (s *BotSuite) TestPlayStopsAtPieceLimit() {
	rnd := random.New(42)
	service := NewService(DefaultStrategies(rnd, s.catalog), testutil.NopLogger())
	engine := s.newEngine(rnd)
	var ended []model.GameOverEvent
	engine.OnGameOver(func(e model.GameOverEvent) error {
		ended = append(ended, e)
		return nil
	})
	engine.NewGame()

	stats, err := service.Play(s.ctx, engineDriver{engine}, model.BotStrategyDrop, 10)
	s.Require().NoError(err)

	s.Equal(10, stats.Pieces)
	s.Equal(model.GameStateGameOver, engine.State())
	s.Require().Len(ended, 1)
	s.Equal(10, ended[0].Pieces)
}

func (s *BotSuite) TestRandomPlayEventuallyTopsOut() {
	rnd := random.New(7)
	service := NewService(DefaultStrategies(rnd, s.catalog), testutil.NopLogger())
	engine := s.newEngine(rnd)
	engine.NewGame()

	stats, err := service.Play(s.ctx, engineDriver{engine}, model.BotStrategyRandom, 0)
	s.Require().NoError(err)

	s.Equal(model.GameStateGameOver, engine.State())
	s.Greater(stats.Pieces, 0)
	s.Greater(stats.Score, 0)
}
