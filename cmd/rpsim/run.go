package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/rpgo/portfolio-simulator/internal/output"
)

type runOptions struct {
	configFile string
	formats    []string
	outputDir  string
	paths      bool
	workers    int
	crash      bool

	params domain.SimulationParameters
	shock  domain.CrashConfig
}

func newRunCmd(state *cliState) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a Monte Carlo simulation batch and write reports",
		Example: `  rpsim run --simulations 500 --seed 42
  rpsim run -c config.yaml -f console -f html -o reports
  rpsim run --crash --crash-probability 0.05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.configuration(cmd.Flags(), state.env)
			if err != nil {
				return err
			}
			return runSimulation(cmd, state, cfg, opts.workers)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file (defaults to the example configuration)")
	f.StringSliceVarP(&opts.formats, "format", "f", nil, "output format, repeatable (see 'rpsim formats')")
	f.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for report files (env RPSIM_OUTPUT_DIR)")
	f.BoolVar(&opts.paths, "include-paths", false, "include every simulated path in JSON output")
	f.IntVar(&opts.workers, "workers", calculation.DefaultWorkers, "number of runs simulated concurrently")

	f.IntVar(&opts.params.StartingAge, "starting-age", 0, "age at the start of the simulation")
	f.IntVar(&opts.params.RetirementAge, "retirement-age", 0, "age at which the simulation ends")
	f.Float64Var(&opts.params.MonthlyIncome, "monthly-income", 0, "monthly income in today's dollars")
	f.Float64Var(&opts.params.MonthlyExpenses, "monthly-expenses", 0, "monthly expenses in today's dollars")
	f.Float64Var(&opts.params.AnnualReturnRate, "return", 0, "expected annual return (0.07 = 7%)")
	f.Float64Var(&opts.params.AnnualVolatility, "volatility", 0, "annual volatility (0.15 = 15%)")
	f.Float64Var(&opts.params.InflationRate, "inflation", 0, "annual inflation rate")
	f.Float64Var(&opts.params.InitialInvestment, "initial-investment", 0, "starting portfolio value")
	f.IntVarP(&opts.params.NumSimulations, "simulations", "n", 0, "number of simulated paths")
	f.Int64Var(&opts.params.Seed, "seed", 0, "base random seed (0 derives one from the clock)")
	f.IntVar(&opts.params.TrailingWindow, "trailing-window", 0, "trailing return window in months")

	defaults := config.DefaultCrashConfig()
	f.BoolVar(&opts.crash, "crash", false, "enable market crash injection")
	f.Float64Var(&opts.shock.Probability, "crash-probability", defaults.Probability, "per-month crash probability")
	f.Float64Var(&opts.shock.Return, "crash-return", defaults.Return, "return applied in a crash month")
	f.IntVar(&opts.shock.RecoveryMonths, "crash-recovery-months", defaults.RecoveryMonths, "length of the recovery window in months")
	return cmd
}

// configuration loads the base configuration and applies explicitly set flags.
func (o *runOptions) configuration(flags *pflag.FlagSet, env config.Environment) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	var cfg *domain.Configuration
	if o.configFile != "" {
		loaded, err := parser.LoadFromFile(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = parser.CreateExampleConfiguration()
		cfg.Output.Directory = ""
	}

	p := &cfg.Simulation
	overrides := map[string]func(){
		"starting-age":       func() { p.StartingAge = o.params.StartingAge },
		"retirement-age":     func() { p.RetirementAge = o.params.RetirementAge },
		"monthly-income":     func() { p.MonthlyIncome = o.params.MonthlyIncome },
		"monthly-expenses":   func() { p.MonthlyExpenses = o.params.MonthlyExpenses },
		"return":             func() { p.AnnualReturnRate = o.params.AnnualReturnRate },
		"volatility":         func() { p.AnnualVolatility = o.params.AnnualVolatility },
		"inflation":          func() { p.InflationRate = o.params.InflationRate },
		"initial-investment": func() { p.InitialInvestment = o.params.InitialInvestment },
		"simulations":        func() { p.NumSimulations = o.params.NumSimulations },
		"seed":               func() { p.Seed = o.params.Seed },
		"trailing-window":    func() { p.TrailingWindow = o.params.TrailingWindow },
		"format":             func() { cfg.Output.Formats = o.formats },
		"output-dir":         func() { cfg.Output.Directory = o.outputDir },
		"include-paths":      func() { cfg.Output.IncludePaths = o.paths },
	}
	flags.Visit(func(fl *pflag.Flag) {
		if apply, ok := overrides[fl.Name]; ok {
			apply()
		}
	})

	crashTuned := flags.Changed("crash-probability") || flags.Changed("crash-return") || flags.Changed("crash-recovery-months")
	switch {
	case flags.Changed("crash") && !o.crash:
		p.Crash = nil
	case o.crash || crashTuned:
		shock := *config.DefaultCrashConfig()
		if p.Crash != nil {
			shock = *p.Crash
		}
		if flags.Changed("crash-probability") {
			shock.Probability = o.shock.Probability
		}
		if flags.Changed("crash-return") {
			shock.Return = o.shock.Return
		}
		if flags.Changed("crash-recovery-months") {
			shock.RecoveryMonths = o.shock.RecoveryMonths
		}
		p.Crash = &shock
	}

	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"console"}
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = env.OutputDir
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	for _, name := range cfg.Output.Formats {
		if output.GetFormatterByName(name) == nil {
			return nil, fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, name)
		}
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, state *cliState, cfg *domain.Configuration, workers int) error {
	runner := calculation.NewBatchRunner()
	runner.Workers = workers
	runner.SetLogger(state.log.WithField("component", "batch"))

	batch, err := runner.Run(cmd.Context(), cfg.Simulation)
	if err != nil {
		return err
	}
	report := calculation.NewBatchReport(batch, cfg.Output.IncludePaths)

	for _, name := range cfg.Output.Formats {
		f := output.GetFormatterByName(name)
		if f.Name() == "console" {
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			continue
		}
		file, err := output.WriteFormatted(f, report, cfg.Output.Directory)
		if err != nil {
			return err
		}
		state.log.WithField("format", f.Name()).Infof("report written to %s", file)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
	}
	return nil
}
