package cli

import (
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after merging defaults, config file, environment and flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return out.Print(cfg)
		},
	}
}
