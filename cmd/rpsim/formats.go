package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-simulator/internal/output"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(out, "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
			return nil
		},
	}
}
