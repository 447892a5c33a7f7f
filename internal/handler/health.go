package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VehicleCounter reports how many vehicles are tracked
type VehicleCounter interface {
	VehicleCount() int
}

// HealthHandler handles liveness checks
type HealthHandler struct {
	engine  string
	counter VehicleCounter
}

// NewHealthHandler creates a new health handler for the named engine
func NewHealthHandler(engine string, counter VehicleCounter) *HealthHandler {
	return &HealthHandler{engine: engine, counter: counter}
}

// Health handles GET /health requests
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"engine":   h.engine,
		"vehicles": h.counter.VehicleCount(),
	})
}
