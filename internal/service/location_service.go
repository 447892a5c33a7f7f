package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"vehicle-locator/internal/models"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidVehicleID   = errors.New("invalid vehicle id")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidRadius      = errors.New("invalid radius")
	ErrVehicleNotFound    = errors.New("vehicle not found")
)

// LocationRepository is the spatial engine the service drives
type LocationRepository interface {
	Report(id string, loc models.Coordinate)
	Query(center models.Coordinate, radiusKm float64) []string
	Locate(id string) (models.Coordinate, bool)
	Len() int
}

// LocationService validates requests and forwards them to the spatial engine
type LocationService struct {
	repo   LocationRepository
	logger zerolog.Logger
}

// NewLocationService creates a new location service
func NewLocationService(repo LocationRepository, logger zerolog.Logger) *LocationService {
	return &LocationService{repo: repo, logger: logger}
}

// ReportLocation records loc as the current position of vehicleID
func (s *LocationService) ReportLocation(ctx context.Context, vehicleID string, loc models.Coordinate) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("service: report cancelled: %w", err)
	}
	if strings.TrimSpace(vehicleID) == "" {
		return fmt.Errorf("service: %w: empty", ErrInvalidVehicleID)
	}
	if !loc.Valid() {
		return fmt.Errorf("service: %w: (%f, %f)", ErrInvalidCoordinates, loc.Latitude, loc.Longitude)
	}

	s.repo.Report(vehicleID, loc)
	s.logger.Debug().
		Str("vehicle_id", vehicleID).
		Float64("latitude", loc.Latitude).
		Float64("longitude", loc.Longitude).
		Msg("location reported")
	return nil
}

// VehiclesInArea returns the sorted ids of every vehicle within radiusKm of center.
// The result is empty, not nil, when nothing matches.
func (s *LocationService) VehiclesInArea(ctx context.Context, center models.Coordinate, radiusKm float64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("service: query cancelled: %w", err)
	}
	if !center.Valid() {
		return nil, fmt.Errorf("service: %w: (%f, %f)", ErrInvalidCoordinates, center.Latitude, center.Longitude)
	}
	if !(radiusKm > 0) || math.IsInf(radiusKm, 1) {
		return nil, fmt.Errorf("service: %w: %f", ErrInvalidRadius, radiusKm)
	}

	ids := s.repo.Query(center, radiusKm)
	if ids == nil {
		ids = []string{}
	}
	sort.Strings(ids)
	return ids, nil
}

// VehicleLocation returns the last reported position of vehicleID
func (s *LocationService) VehicleLocation(ctx context.Context, vehicleID string) (*models.VehicleLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("service: lookup cancelled: %w", err)
	}

	loc, ok := s.repo.Locate(vehicleID)
	if !ok {
		return nil, fmt.Errorf("service: %w: %q", ErrVehicleNotFound, vehicleID)
	}
	return &models.VehicleLocation{VehicleID: vehicleID, Location: loc}, nil
}

// VehicleCount returns the number of tracked vehicles
func (s *LocationService) VehicleCount() int {
	return s.repo.Len()
}
