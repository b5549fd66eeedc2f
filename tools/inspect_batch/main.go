package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/shopspring/decimal"
)

// Checks that the per-month bands drawn by the HTML chart come from varied paths.
func main() {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	if len(os.Args) > 1 {
		loaded, err := parser.LoadFromFile(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	params := cfg.Simulation
	if params.NumSimulations > 10 {
		params.NumSimulations = 10
	}
	if params.Seed == 0 {
		params.Seed = 12345
	}

	batch, err := calculation.NewBatchRunner().Run(context.Background(), params)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== BATCH STRUCTURE ===\n")
	fmt.Printf("Number of simulations: %d\n", len(batch.Runs))
	fmt.Printf("Months: %d (%s to %s)\n", len(batch.Months), batch.Months[0].Format("2006-01-02"), batch.Months[len(batch.Months)-1].Format("2006-01-02"))

	for i := 0; i < min(3, len(batch.Runs)); i++ {
		run := batch.Runs[i]
		fmt.Printf("\nSimulation %d (seed %d):\n", run.ID, run.Seed)
		fmt.Printf("  Crash months: %v\n", run.Returns.CrashMonths)
		fmt.Printf("  Guard months: %d\n", run.Path.GuardMonths())
		for m := 0; m < min(3, run.Path.Len()); m++ {
			rec := run.Path.Records[m]
			fmt.Printf("    Month %d: age=%.2f return=%.4f value=$%s\n", m, rec.Age, rec.Return, decimal.NewFromFloat(rec.PortfolioValue).StringFixed(0))
		}
	}

	fmt.Printf("\n=== BAND EXTRACTION ===\n")
	stats := calculation.Summarize(batch)
	probe := min(59, len(stats.MonthlyBands)-1)
	values := make([]float64, len(batch.Runs))
	allSame := true
	for i, run := range batch.Runs {
		values[i] = run.Path.Records[probe].PortfolioValue
		if values[i] != values[0] {
			allSame = false
		}
	}
	fmt.Printf("Month %d values across simulations: %v\n", probe, values)
	band := stats.MonthlyBands[probe]
	fmt.Printf("Band: p10=%.0f p50=%.0f p90=%.0f\n", band.P10, band.P50, band.P90)
	if allSame && params.AnnualVolatility > 0 {
		fmt.Printf("❌ PROBLEM: all simulations share the same month %d value\n", probe)
		return
	}
	fmt.Printf("✅ Month %d values show variation as expected\n", probe)
}
