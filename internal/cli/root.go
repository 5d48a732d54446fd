package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	logger *slog.Logger
	out    *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	defaults := DefaultConfig()
	v := newViper()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "blockdrop",
		Short: "Falling-block puzzle engine",
		Long: `blockdrop drives the falling-block game engine from the command line.

It can list the piece catalog, preview a game after a sequence of moves,
and run bot-played games with gravity enabled to compare strategies.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := LoadConfig(v, configFile)
			if err != nil {
				return err
			}
			cfg = loaded

			logger, err = NewLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}
			out = NewOutput(cfg.Output, cmd.OutOrStdout())
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (YAML)")
	flags.StringP("output", "o", defaults.Output, "Output format: text, json, yaml (env: BLOCKDROP_OUTPUT)")
	flags.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error (env: BLOCKDROP_LOG_LEVEL)")
	flags.String("log-format", defaults.LogFormat, "Log format: text, json (env: BLOCKDROP_LOG_FORMAT)")
	flags.Int("rows", defaults.Rows, "Board rows including the hidden spawn rows (env: BLOCKDROP_ROWS)")
	flags.Int("cols", defaults.Cols, "Board columns (env: BLOCKDROP_COLS)")
	flags.Int("lookahead", defaults.Lookahead, "Upcoming pieces shown (env: BLOCKDROP_LOOKAHEAD)")
	flags.Duration("gravity", defaults.GravityInterval, "Gravity tick interval (env: BLOCKDROP_GRAVITY_INTERVAL)")
	flags.Uint64("seed", defaults.Seed, "Random seed, 0 for time-based (env: BLOCKDROP_SEED)")
	cobra.CheckErr(bindFlags(v, flags))

	// Add subcommands
	rootCmd.AddCommand(newShapesCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command. Cancelling ctx stops running games.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
