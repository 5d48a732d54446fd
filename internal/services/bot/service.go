package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/blockdrop/internal/model"
)

// MaxBotIterations is a safety limit on commands submitted for a single piece
const MaxBotIterations = 1000

// Driver submits commands to a running engine
type Driver interface {
	Submit(ctx context.Context, cmd model.Command) (model.CommandResult, error)
	Snapshot(ctx context.Context) (model.ViewSnapshot, error)
}

// Service plays games headlessly with a named strategy
type Service struct {
	strategies map[string]Strategy
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// Strategy returns the named strategy
func (s *Service) Strategy(name string) (Strategy, error) {
	strategy, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
	}
	return strategy, nil
}

// Play drives the current game until it ends or maxPieces pieces have been
// placed, in which case the game is abandoned. A maxPieces of 0 means no limit.
// Gravity may be running concurrently; every command goes through the driver.
func (s *Service) Play(ctx context.Context, driver Driver, strategyName string, maxPieces int) (model.Stats, error) {
	strategy, err := s.Strategy(strategyName)
	if err != nil {
		return model.Stats{}, err
	}

	snap, err := driver.Snapshot(ctx)
	if err != nil {
		return model.Stats{}, err
	}

	for snap.State == model.GameStatePlaying {
		if maxPieces > 0 && snap.Stats.Pieces >= maxPieces {
			result, err := driver.Submit(ctx, model.UserCommand(model.CommandAbandon))
			if err != nil {
				return snap.Stats, err
			}
			s.logger.Debug("piece limit reached",
				slog.String("game_id", string(snap.GameID)),
				slog.Int("pieces", snap.Stats.Pieces))
			return result.Snapshot.Stats, nil
		}

		snap, err = s.playPiece(ctx, driver, strategy, snap)
		if err != nil {
			return snap.Stats, err
		}
	}

	s.logger.Info("bot game finished",
		slog.String("game_id", string(snap.GameID)),
		slog.String("strategy", strategy.Name()),
		slog.Int("score", snap.Stats.Score),
		slog.Int("lines", snap.Stats.Lines),
		slog.Int("pieces", snap.Stats.Pieces),
	)
	return snap.Stats, nil
}

// playPiece plays the strategy's moves until the current piece lands
func (s *Service) playPiece(ctx context.Context, driver Driver, strategy Strategy, snap model.ViewSnapshot) (model.ViewSnapshot, error) {
	startPieces := snap.Stats.Pieces
	cmds := strategy.NextMoves(snap)
	if len(cmds) == 0 {
		cmds = []model.Command{model.UserCommand(model.CommandHardDrop)}
	}

	for i := 0; i < MaxBotIterations; i++ {
		cmd := cmds[min(i, len(cmds)-1)]
		result, err := driver.Submit(ctx, cmd)
		if err != nil {
			return snap, err
		}
		snap = result.Snapshot
		if snap.State != model.GameStatePlaying || snap.Stats.Pieces > startPieces {
			return snap, nil
		}
	}

	s.logger.Warn("bot hit iteration limit",
		slog.String("game_id", string(snap.GameID)),
		slog.Int("limit", MaxBotIterations))
	return snap, fmt.Errorf("piece did not land after %d commands", MaxBotIterations)
}
