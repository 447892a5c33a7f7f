package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"vehicle-locator/internal/models"
)

// LocationRecord is one row of the import file: vehicle_id,latitude,longitude
type LocationRecord struct {
	VehicleID string
	Lat       float64
	Lon       float64
}

func (r LocationRecord) Location() models.Coordinate {
	return models.Coordinate{Latitude: r.Lat, Longitude: r.Lon}
}

func parseCSV(filePath string) ([]LocationRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readRecords(file)
}

func readRecords(r io.Reader) ([]LocationRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	// Skip header
	_, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []LocationRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		id := strings.TrimSpace(record[0])
		if id == "" {
			return nil, fmt.Errorf("empty vehicle id on line %d", len(records)+2)
		}

		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %s", record[1])
		}

		lon, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %s", record[2])
		}

		location := LocationRecord{VehicleID: id, Lat: lat, Lon: lon}
		if !location.Location().Valid() {
			return nil, fmt.Errorf("coordinates out of range on line %d: %f,%f", len(records)+2, lat, lon)
		}

		records = append(records, location)
	}

	return records, nil
}
