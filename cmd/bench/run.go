package main

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"vehicle-locator/internal/models"
	"vehicle-locator/internal/repository"

	"github.com/spf13/cobra"
)

type BenchmarkResult struct {
	Engine        repository.EngineKind
	Vehicles      int
	LoadDuration  time.Duration
	Queries       int
	QueryDuration time.Duration
	QueriesPerSec float64
	TotalResults  int64
	AvgResults    float64
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	kinds, err := parseKinds(engineNames)
	if err != nil {
		return err
	}

	r := rand.New(rand.NewSource(seed))
	fleet := generateFleet(r, numVehicles)
	centers := make([]models.Coordinate, numQueries)
	for i := range centers {
		centers[i] = randomCoordinate(r)
	}

	logger.Info().
		Int("vehicles", numVehicles).
		Int("queries", numQueries).
		Float64("radius_km", radiusKm).
		Int("workers", numWorkers).
		Msg("running benchmark")

	for _, kind := range kinds {
		result, err := benchmarkEngine(kind, fleet, centers, radiusKm, numWorkers)
		if err != nil {
			return err
		}
		printResult(cmd, result)
	}
	return nil
}

func benchmarkEngine(kind repository.EngineKind, fleet []vehicle, centers []models.Coordinate, radiusKm float64, workers int) (BenchmarkResult, error) {
	engine, err := repository.NewEngine(kind, logger)
	if err != nil {
		return BenchmarkResult{}, err
	}
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	parallel(len(fleet), workers, func(i int) {
		engine.Report(fleet[i].id, fleet[i].loc)
	})
	loadDuration := time.Since(start)

	var totalResults atomic.Int64
	start = time.Now()
	parallel(len(centers), workers, func(i int) {
		ids := engine.Query(centers[i], radiusKm)
		totalResults.Add(int64(len(ids)))
		logger.Debug().Int("query", i).Int("results", len(ids)).Msg("query done")
	})
	queryDuration := time.Since(start)

	result := BenchmarkResult{
		Engine:        kind,
		Vehicles:      engine.Len(),
		LoadDuration:  loadDuration,
		Queries:       len(centers),
		QueryDuration: queryDuration,
		TotalResults:  totalResults.Load(),
	}
	if queryDuration > 0 {
		result.QueriesPerSec = float64(len(centers)) / queryDuration.Seconds()
	}
	if len(centers) > 0 {
		result.AvgResults = float64(result.TotalResults) / float64(len(centers))
	}
	return result, nil
}

// parallel calls fn(i) for every i in [0, n), splitting the range over workers goroutines.
func parallel(n, workers int, fn func(i int)) {
	per := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		from, to := w*per, min((w+1)*per, n)
		if from >= to {
			break
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				fn(i)
			}
		}(from, to)
	}
	wg.Wait()
}

func printResult(cmd *cobra.Command, result BenchmarkResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n=== %s ===\n", result.Engine)
	fmt.Fprintf(out, "Vehicles: %d loaded in %v\n", result.Vehicles, result.LoadDuration)
	fmt.Fprintf(out, "Queries: %d in %v (%.0f/s)\n", result.Queries, result.QueryDuration, result.QueriesPerSec)
	fmt.Fprintf(out, "Results: %d total, %.2f per query\n", result.TotalResults, result.AvgResults)
}
