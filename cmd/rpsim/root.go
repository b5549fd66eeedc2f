package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-simulator/internal/config"
)

// cliState carries values shared by the subcommands.
type cliState struct {
	env      config.Environment
	logLevel string
	log      *logrus.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{env: config.LoadEnvironment()}

	root := &cobra.Command{
		Use:   "rpsim",
		Short: "Monte Carlo retirement portfolio simulator",
		Long: `rpsim simulates many random monthly return paths for a retirement portfolio
and summarizes the distribution of the final balance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(state.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			state.log = log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&state.logLevel, "log-level", state.env.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(state),
		newServeCmd(state),
		newExampleConfigCmd(),
		newFormatsCmd(),
	)
	return root
}

// newLogger builds the JSON logrus logger used by every command.
func newLogger(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(w)
	log.SetLevel(lvl)
	return log, nil
}
