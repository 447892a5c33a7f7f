package handler

import (
	"errors"
	"io"
	"net/http"

	"vehicle-locator/internal/models"

	"github.com/gin-gonic/gin"
)

type coordinateRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// ReportRequest is the body of POST /report/:vehicle_id
type ReportRequest struct {
	Location *coordinateRequest `json:"location"`
}

// Report handles POST /report/:vehicle_id requests
//
//	@Summary	Report the current location of a vehicle
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		vehicle_id	path		string			true	"Vehicle ID"
//	@Param		body		body		ReportRequest	true	"Current location"
//	@Success	200			{object}	models.VehicleLocation
//	@Failure	400			{object}	map[string]string
//	@Router		/report/{vehicle_id} [post]
func (h *LocationHandler) Report(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNoLocation})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidReport})
		return
	}
	if req.Location == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoLocation})
		return
	}

	vehicleID := c.Param("vehicle_id")
	loc := models.Coordinate{Latitude: *req.Location.Latitude, Longitude: *req.Location.Longitude}

	if err := h.service.ReportLocation(c.Request.Context(), vehicleID, loc); err != nil {
		h.writeError(c, err, msgInvalidReport)
		return
	}

	c.JSON(http.StatusOK, models.VehicleLocation{VehicleID: vehicleID, Location: loc})
}

// Vehicle handles GET /vehicles/:vehicle_id requests
//
//	@Summary	Last reported location of a vehicle
//	@Tags		locations
//	@Produce	json
//	@Param		vehicle_id	path		string	true	"Vehicle ID"
//	@Success	200			{object}	models.VehicleLocation
//	@Failure	404			{object}	map[string]string
//	@Router		/vehicles/{vehicle_id} [get]
func (h *LocationHandler) Vehicle(c *gin.Context) {
	location, err := h.service.VehicleLocation(c.Request.Context(), c.Param("vehicle_id"))
	if err != nil {
		h.writeError(c, err, msgInvalidVehicleID)
		return
	}

	c.JSON(http.StatusOK, location)
}
