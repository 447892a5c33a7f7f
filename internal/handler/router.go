package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the HTTP routes
func NewRouter(locations *LocationHandler, health *HealthHandler, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger), Recovery(logger))

	r.GET("/health", health.Health)
	r.POST("/report/:vehicle_id", locations.Report)
	r.GET("/query", locations.Query)
	r.GET("/vehicles/:vehicle_id", locations.Vehicle)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
