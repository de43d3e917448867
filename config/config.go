// Package config loads the service configuration from the environment.
// A Config is loaded once at startup and never modified afterwards.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	STACEndpoint    string   `envconfig:"STAC_ENDPOINT" default:"https://earth-search.aws.element84.com/v1" validate:"required,url"`
	STACCollections []string `envconfig:"STAC_COLLECTIONS" default:"sentinel-2-l2a" validate:"min=1,dive,required"`

	TiTilerEndpoint string        `envconfig:"TITILER_ENDPOINT" default:"http://titiler:8000" validate:"required,url"`
	TileAsset       string        `envconfig:"TILE_ASSET" default:"visual" validate:"required"`
	TileTimeout     time.Duration `envconfig:"TILE_TIMEOUT" default:"60s" validate:"gt=0"`

	RecentDays int     `envconfig:"RECENT_DAYS" default:"180" validate:"gte=0"`
	MaxCloud   float64 `envconfig:"MAX_CLOUD" default:"20" validate:"gte=0,lte=100"`

	GoogleStaticMapsKey string `envconfig:"GOOGLE_STATICMAPS_KEY"`
	StaticMapZoom       int    `envconfig:"STATIC_MAP_ZOOM" default:"16" validate:"gte=0,lte=21"`
	StaticMapSize       string `envconfig:"STATIC_MAP_SIZE" default:"640x640" validate:"required"`

	TimeZone       string `envconfig:"TZ_NAME" default:"UTC" validate:"required"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760" validate:"gt=0"`
	Port           int    `envconfig:"PORT" default:"8080" validate:"gte=1,lte=65535"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn warning error fatal panic"`

	location *time.Location
}

// Location is the time zone in which "today" is evaluated.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Load reads an optional .env file, then the process environment, applies
// defaults and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debugf("Loaded .env")
	}
	return FromEnv()
}

// FromEnv is Load without the .env file.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config: bad TZ_NAME %q: %w", cfg.TimeZone, err)
	}
	cfg.location = loc
	return cfg, nil
}
