package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	calc "github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	money "github.com/rpgo/portfolio-simulator/pkg/decimal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_path <config-file> [seed]")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	params := cfg.Simulation
	seed := params.Seed
	if len(os.Args) > 2 {
		seed, err = strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			panic(err)
		}
	}

	months := calc.NewMonthIndex(params.EffectiveStartDate(), params.NumMonths())
	path, returns, trailing, err := calc.RunPath(months, params, rand.New(rand.NewSource(seed)))
	if err != nil {
		panic(err)
	}

	crashed := make(map[int]bool, len(returns.CrashMonths))
	for _, m := range returns.CrashMonths {
		crashed[m] = true
	}

	fmt.Println("Index,Date,Age,Income,Expenses,Net,Return,Crash,Guard,Value,Trailing")
	cumNet := money.Zero()
	for i, rec := range path.Records {
		cumNet = cumNet.Add(money.NewMoney(rec.NetContribution))
		tr := ""
		if trailing.Defined(i) {
			tr = strconv.FormatFloat(trailing[i], 'f', 4, 64)
		}
		fmt.Printf("%d,%s,%.2f,%.0f,%.0f,%.0f,%.4f,%v,%v,%.0f,%s\n",
			i, rec.Date.Format("2006-01-02"), rec.Age, rec.MonthlyIncome, rec.MonthlyExpenses,
			rec.NetContribution, rec.Return, crashed[i], rec.GuardApplied, rec.PortfolioValue, tr)
	}

	final := money.NewMoney(path.Final())
	growth := final.Sub(cumNet).Sub(money.NewMoney(params.InitialInvestment))
	fmt.Printf("\nFinal value: %s, cumulative net contributions: %s, market growth: %s\n",
		final.Format(), cumNet.Format(), growth.Format())
}
