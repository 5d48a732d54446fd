package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/model"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [move...]",
		Short: "Start a game and show it after a sequence of moves",
		Long: `Start a game and apply moves in order, then show the board.

Moves: left, right, down, rotate, drop (hard drop), pause, resume.
Use --seed for a repeatable piece sequence.`,
		Example: "  blockdrop preview --seed 42 rotate left left drop",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := factory.New(factory.Config{
				Game:   cfg.Config,
				Logger: logger,
				Seed:   cfg.Seed,
			})
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.Engine.Apply(model.UserCommand(model.CommandStart))
			if err != nil {
				return err
			}
			for _, arg := range args {
				result, err = app.Engine.Apply(model.UserCommand(parseMove(arg)))
				if err != nil {
					return fmt.Errorf("move %q: %w", arg, err)
				}
				logger.Debug("preview move",
					slog.String("move", arg),
					slog.Bool("moved", result.Moved))
			}
			return out.Print(result.Snapshot)
		},
	}
}

// parseMove maps a move name to a command type. Unknown names pass through
// and are rejected by the engine.
func parseMove(s string) model.CommandType {
	move := strings.ToLower(strings.TrimSpace(s))
	switch move {
	case "drop", "hard-drop":
		return model.CommandHardDrop
	case "rot":
		return model.CommandRotate
	default:
		return model.CommandType(move)
	}
}
