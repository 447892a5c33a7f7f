package main

import (
	"os"

	_ "vehicle-locator/docs"
	"vehicle-locator/internal/config"
	"vehicle-locator/internal/handler"
	"vehicle-locator/internal/logging"
	"vehicle-locator/internal/repository"
	"vehicle-locator/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

//	@title			Vehicle Locator API
//	@version		1.0
//	@description	Tracks vehicle positions and answers "who is near" queries.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger, err := logging.New(config.LogLevel, config.LogFormat, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up logging")
	}
	gin.SetMode(config.GinMode)

	// Initialize layers
	engine, err := repository.NewEngine(repository.EngineKind(config.LocationEngine), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create location engine")
	}

	locationService := service.NewLocationService(engine, logger.With().Str("component", "service").Logger())

	locationHandler := handler.NewLocationHandler(locationService, logger.With().Str("component", "handler").Logger())
	healthHandler := handler.NewHealthHandler(config.LocationEngine, locationService)

	r := handler.NewRouter(locationHandler, healthHandler, logger.With().Str("component", "http").Logger())

	logger.Info().
		Str("address", config.ServerAddress).
		Str("engine", config.LocationEngine).
		Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
