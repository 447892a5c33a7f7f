package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress  string `mapstructure:"SERVER_ADDRESS" validate:"required,hostname_port"`
	LocationEngine string `mapstructure:"LOCATION_ENGINE" validate:"oneof=grid scan rtree"`
	LogLevel       string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	LogFormat      string `mapstructure:"LOG_FORMAT" validate:"oneof=json console"`
	GinMode        string `mapstructure:"GIN_MODE" validate:"oneof=debug release test"`
}

var defaults = map[string]string{
	"SERVER_ADDRESS":  "0.0.0.0:8080",
	"LOCATION_ENGINE": "grid",
	"LOG_LEVEL":       "info",
	"LOG_FORMAT":      "json",
	"GIN_MODE":        "release",
}

// LoadConfig reads configuration from path/app.env, if present, and from environment
// variables, which take precedence.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err = validator.New().Struct(config); err != nil {
		return config, fmt.Errorf("config: invalid: %w", err)
	}
	return config, nil
}
