package main

import (
	"context"
	"flag"
	"os"
	"time"

	"vehicle-locator/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	api := flag.String("api", "http://localhost:8080", "Base URL of the vehicle locator API")
	timeout := flag.Duration("timeout", 5*time.Second, "Timeout of each request")
	flag.Parse()

	logger, err := logging.New("info", logging.FormatConsole, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up logging")
	}

	if *file == "" {
		logger.Fatal().Msg("--file flag is required")
	}

	logger.Info().Str("file", *file).Msg("starting import")

	records, err := parseCSV(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot parse CSV")
	}

	logger.Info().Int("records", len(records)).Msg("parsed records")

	client := newReportClient(*api, *timeout)
	ctx := context.Background()

	for i, record := range records {
		if err := client.Report(ctx, record); err != nil {
			logger.Fatal().Err(err).Int("row", i+2).Str("vehicle_id", record.VehicleID).Msg("cannot report location")
		}
	}

	if err := verifyImport(ctx, client, records); err != nil {
		logger.Fatal().Err(err).Msg("cannot verify import")
	}

	logger.Info().Int("records", len(records)).Msg("successfully imported")
}

// verifyImport checks that the last position of every vehicle in records is the one the
// API now holds.
func verifyImport(ctx context.Context, client *reportClient, records []LocationRecord) error {
	last := make(map[string]LocationRecord, len(records))
	for _, record := range records {
		last[record.VehicleID] = record
	}

	for id, record := range last {
		got, err := client.Vehicle(ctx, id)
		if err != nil {
			return err
		}
		if got.Location != record.Location() {
			return &mismatchError{vehicleID: id, expected: record.Location(), actual: got.Location}
		}
	}
	return nil
}
