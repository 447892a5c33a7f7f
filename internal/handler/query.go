package handler

import (
	"net/http"
	"strings"

	"vehicle-locator/internal/models"

	"github.com/gin-gonic/gin"
)

type queryRequest struct {
	Latitude  *float64 `form:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `form:"longitude" binding:"required,gte=-180,lte=180"`
	Radius    *float64 `form:"radius" binding:"required,gt=0"`
}

var queryParams = []string{"latitude", "longitude", "radius"}

// Query handles GET /query requests
//
//	@Summary	Vehicles within a radius of a point
//	@Tags		locations
//	@Produce	json
//	@Param		latitude	query		number	true	"Center latitude"
//	@Param		longitude	query		number	true	"Center longitude"
//	@Param		radius		query		number	true	"Radius in kilometers"
//	@Success	200			{array}		string
//	@Failure	400			{object}	map[string]string
//	@Router		/query [get]
func (h *LocationHandler) Query(c *gin.Context) {
	// A blank value would bind as 0, so it counts as missing.
	for _, param := range queryParams {
		if v, ok := c.GetQuery(param); !ok || strings.TrimSpace(v) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNoLocation})
			return
		}
	}

	var req queryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidQuery})
		return
	}

	center := models.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	ids, err := h.service.VehiclesInArea(c.Request.Context(), center, *req.Radius)
	if err != nil {
		h.writeError(c, err, msgInvalidQuery)
		return
	}

	c.JSON(http.StatusOK, ids)
}
