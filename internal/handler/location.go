package handler

import (
	"context"
	"errors"
	"net/http"

	"vehicle-locator/internal/models"
	"vehicle-locator/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	msgNoLocation       = "no location information provided"
	msgInvalidReport    = "location isn't a valid pair of latitude and longitude coordinates"
	msgInvalidQuery     = "location isn't a valid set of latitude, longitude, and radius coordinates"
	msgInvalidVehicleID = "invalid vehicle id"
	msgVehicleNotFound  = "vehicle not found"
	msgInternal         = "internal server error"
)

// LocationService is the service interface for dependency injection
type LocationService interface {
	ReportLocation(ctx context.Context, vehicleID string, loc models.Coordinate) error
	VehiclesInArea(ctx context.Context, center models.Coordinate, radiusKm float64) ([]string, error)
	VehicleLocation(ctx context.Context, vehicleID string) (*models.VehicleLocation, error)
}

// LocationHandler handles location reporting and proximity queries
type LocationHandler struct {
	service LocationService
	logger  zerolog.Logger
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc LocationService, logger zerolog.Logger) *LocationHandler {
	return &LocationHandler{service: svc, logger: logger}
}

// writeError maps service errors to responses. invalidMsg is the body used for
// out-of-range coordinates or radius.
func (h *LocationHandler) writeError(c *gin.Context, err error, invalidMsg string) {
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgVehicleNotFound})
	case errors.Is(err, service.ErrInvalidVehicleID):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidVehicleID})
	case errors.Is(err, service.ErrInvalidCoordinates), errors.Is(err, service.ErrInvalidRadius):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidMsg})
	default:
		h.logger.Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}
