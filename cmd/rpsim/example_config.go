package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/rpgo/portfolio-simulator/internal/output"
)

func newExampleConfigCmd() *cobra.Command {
	var crash bool
	cmd := &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write an example YAML configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_config.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if crash {
				cfg.Simulation.Crash = config.DefaultCrashConfig()
			}
			if err := output.SaveConfiguration(cfg, filename); err != nil {
				return fmt.Errorf("failed to write %s: %w", filename, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
			return nil
		},
	}
	cmd.Flags().BoolVar(&crash, "crash", false, "include the default market crash settings")
	return cmd
}
