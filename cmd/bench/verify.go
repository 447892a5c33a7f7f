package main

import (
	"fmt"
	"math/rand"
	"slices"
	"sort"

	"vehicle-locator/internal/models"
	"vehicle-locator/internal/repository"

	"github.com/spf13/cobra"
)

var verifyRadii = []float64{1, 10, 50, 250, 1000, 5000}

type mismatch struct {
	Engine   repository.EngineKind
	Center   models.Coordinate
	RadiusKm float64
	Expected []string
	Actual   []string
}

func (m mismatch) Error() string {
	return fmt.Sprintf("%s: query (%f, %f) r=%.0fkm returned %d vehicles, scan returned %d",
		m.Engine, m.Center.Latitude, m.Center.Longitude, m.RadiusKm, len(m.Actual), len(m.Expected))
}

func runVerify(cmd *cobra.Command, args []string) error {
	kinds, err := parseKinds(engineNames)
	if err != nil {
		return err
	}

	if err := verifyEngines(rand.New(rand.NewSource(seed)), kinds, numVehicles, numQueries); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d engines agree on %d queries over %d vehicles\n", len(kinds), numQueries, numVehicles)
	return nil
}

// verifyEngines loads the same fleet into every engine, relocates part of it, and checks
// each engine's answers against the scan engine.
func verifyEngines(r *rand.Rand, kinds []repository.EngineKind, vehicles, queries int) error {
	oracle, err := repository.NewEngine(repository.EngineScan, logger)
	if err != nil {
		return err
	}
	engines := make(map[repository.EngineKind]repository.Engine, len(kinds))
	for _, kind := range kinds {
		if engines[kind], err = repository.NewEngine(kind, logger); err != nil {
			return err
		}
	}

	report := func(v vehicle) {
		oracle.Report(v.id, v.loc)
		for _, engine := range engines {
			engine.Report(v.id, v.loc)
		}
	}

	fleet := generateFleet(r, vehicles)
	for _, v := range fleet {
		report(v)
	}
	for i := 0; i < len(fleet)/4; i++ {
		v := fleet[r.Intn(len(fleet))]
		v.loc = randomCoordinate(r)
		report(v)
	}

	for q := 0; q < queries; q++ {
		center := randomCoordinate(r)
		radius := verifyRadii[r.Intn(len(verifyRadii))]
		expected := sortedIDs(oracle.Query(center, radius))

		for kind, engine := range engines {
			actual := sortedIDs(engine.Query(center, radius))
			if !slices.Equal(expected, actual) {
				return mismatch{Engine: kind, Center: center, RadiusKm: radius, Expected: expected, Actual: actual}
			}
		}
		logger.Debug().Int("query", q).Int("results", len(expected)).Msg("engines agree")
	}
	return nil
}

func sortedIDs(ids []string) []string {
	sort.Strings(ids)
	return ids
}
