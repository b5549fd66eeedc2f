package calculation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// DefaultWorkers bounds the number of runs simulated concurrently.
const DefaultWorkers = 10

// BatchRunner executes independent simulation runs and collects them into a batch.
type BatchRunner struct {
	Workers int
	Logger  Logger
}

// NewBatchRunner creates a batch runner with the default worker count.
func NewBatchRunner() *BatchRunner {
	return &BatchRunner{Workers: DefaultWorkers, Logger: NopLogger{}}
}

// SetLogger sets the logger for the runner. If nil is provided, a no-op logger is used.
func (br *BatchRunner) SetLogger(l Logger) {
	if l == nil {
		br.Logger = NopLogger{}
		return
	}
	br.Logger = l
}

// Run validates params and simulates params.NumSimulations independent paths.
// Any failing run, or cancellation of ctx, fails the whole batch.
func (br *BatchRunner) Run(ctx context.Context, params domain.SimulationParameters) (*domain.SimulationBatch, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}
	logger := br.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	workers := br.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	seed := params.Seed
	if seed == 0 {
		seed = seedFunc()
	}
	months := NewMonthIndex(params.EffectiveStartDate(), params.NumMonths())
	logger.Debugf("starting batch: %d runs x %d months, seed %d, %d workers", params.NumSimulations, len(months), seed, workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runs := make([]domain.SimulationRun, params.NumSimulations)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	semaphore := make(chan struct{}, workers) // Limit concurrent simulations

dispatch:
	for i := 0; i < params.NumSimulations; i++ {
		select {
		case <-runCtx.Done():
			break dispatch
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			if runCtx.Err() != nil {
				return
			}

			run, err := simulateRun(id, runSeed(seed, id), months, params)
			if err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("simulation %d failed: %w", id, err)
					cancel()
				})
				return
			}
			runs[id] = run
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		logger.Errorf("batch aborted: %v", firstErr)
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		logger.Warnf("batch cancelled: %v", err)
		return nil, fmt.Errorf("simulation batch cancelled: %w", err)
	}

	logger.Infof("completed %d simulations over %d months", len(runs), len(months))
	return &domain.SimulationBatch{
		Parameters: params,
		Months:     months,
		Runs:       runs,
		Seed:       seed,
	}, nil
}

// simulateRun generates returns and the portfolio path for a single run with its own random source.
func simulateRun(id int, seed int64, months domain.MonthIndex, params domain.SimulationParameters) (domain.SimulationRun, error) {
	rng := rand.New(rand.NewSource(seed))
	path, returns, trailing, err := RunPath(months, params, rng)
	if err != nil {
		return domain.SimulationRun{}, err
	}
	if final := path.Final(); !isFinite(final) {
		return domain.SimulationRun{}, invalidParameter("portfolio value left the representable range (%v)", final)
	}
	return domain.SimulationRun{
		ID:       id,
		Seed:     seed,
		Path:     path,
		Returns:  returns,
		Trailing: trailing,
	}, nil
}

// RunPath produces one complete path: return series, portfolio trajectory and trailing returns.
func RunPath(months domain.MonthIndex, params domain.SimulationParameters, rng RandomSource) (domain.PortfolioPath, domain.ReturnSeries, domain.TrailingReturnSeries, error) {
	returns, err := GenerateReturns(len(months), params.AnnualReturnRate, params.AnnualVolatility, params.Crash, rng)
	if err != nil {
		return domain.PortfolioPath{}, domain.ReturnSeries{}, nil, err
	}
	path, err := SimulatePath(months, params, returns.Monthly)
	if err != nil {
		return domain.PortfolioPath{}, domain.ReturnSeries{}, nil, err
	}
	return path, returns, TrailingReturns(returns.Monthly, params.TrailingWindow), nil
}
