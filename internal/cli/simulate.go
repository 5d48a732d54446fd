package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/storage/memory"
)

func newSimulateCmd() *cobra.Command {
	var (
		games     int
		parallel  int
		maxPieces int
		strategy  string
		show      bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play games with a bot and print a leaderboard",
		Long: `Play one or more games with a bot strategy while gravity runs on
its normal interval. Games run concurrently and their summaries are ranked
by score once every game has finished.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if games < 1 {
				return fmt.Errorf("--games must be at least 1, got %d", games)
			}
			if !slices.Contains(model.ValidBotStrategies(), strategy) {
				return fmt.Errorf("%w: %s (want one of %v)", model.ErrUnknownStrategy, strategy, model.ValidBotStrategies())
			}

			store := memory.New()
			results := make([]GameResult, games)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(parallel)
			for i := range games {
				g.Go(func() error {
					app, err := factory.New(factory.Config{
						Game:    cfg.Config,
						Logger:  logger.With(slog.Int("game", i+1)),
						Storage: store,
						Seed:    gameSeed(cfg.Seed, i),
					})
					if err != nil {
						return err
					}
					defer app.Close()

					stats, err := app.PlayBot(ctx, strategy, maxPieces)
					if err != nil {
						return fmt.Errorf("game %d: %w", i+1, err)
					}

					result := GameResult{
						Game:     i + 1,
						ID:       app.Engine.GameID(),
						Stats:    stats,
						Strategy: strategy,
					}
					if show {
						snap := app.Engine.Snapshot()
						result.Final = &snap
					}
					results[i] = result
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			top, err := store.TopSummaries(cmd.Context(), games)
			if err != nil {
				return err
			}
			return out.Print(&SimulateReport{Games: results, Leaderboard: top})
		},
	}

	cmd.Flags().IntVarP(&games, "games", "n", 1, "Number of games to play")
	cmd.Flags().IntVar(&parallel, "parallel", 4, "Games played at once, -1 for no limit")
	cmd.Flags().IntVar(&maxPieces, "max-pieces", 200, "Abandon a game after this many pieces, 0 for no limit")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", model.BotStrategyDrop, "Bot strategy: random, drop")
	cmd.Flags().BoolVar(&show, "show", false, "Include each game's final board")

	return cmd
}

// gameSeed derives a distinct seed per game from a fixed base seed.
// A zero base keeps every game time-seeded.
func gameSeed(base uint64, game int) uint64 {
	if base == 0 {
		return 0
	}
	return base + uint64(game)
}
