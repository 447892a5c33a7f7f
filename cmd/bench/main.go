package main

import (
	"fmt"
	"os"
	"runtime"

	"vehicle-locator/internal/logging"
	"vehicle-locator/internal/repository"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	engineNames []string
	numVehicles int
	numQueries  int
	radiusKm    float64
	numWorkers  int
	seed        int64
	verbose     bool

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark and cross-check the location engines",
	Long:  `Loads random vehicle positions into the grid, scan and R-tree engines, times radius queries and verifies that every engine returns the same vehicles.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New(level, logging.FormatConsole, os.Stderr)
		return err
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Time reports and radius queries per engine",
	RunE:  runBenchmark,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every engine matches the scan engine",
	RunE:  runVerify,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&engineNames, "engines", "e", []string{"grid", "scan", "rtree"}, "Engines to exercise")
	rootCmd.PersistentFlags().IntVarP(&numVehicles, "vehicles", "n", 100000, "Number of vehicles to generate")
	rootCmd.PersistentFlags().IntVarP(&numQueries, "queries", "q", 1000, "Number of queries to run")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "Random seed")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	runCmd.Flags().Float64VarP(&radiusKm, "radius", "r", 50.0, "Search radius in km")
	runCmd.Flags().IntVarP(&numWorkers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")

	rootCmd.AddCommand(runCmd, verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseKinds(names []string) ([]repository.EngineKind, error) {
	kinds := make([]repository.EngineKind, 0, len(names))
	for _, name := range names {
		kind := repository.EngineKind(name)
		if _, err := repository.NewEngine(kind, zerolog.Nop()); err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
