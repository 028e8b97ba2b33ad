package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"hotel-marketplace/utils"
)

// AppConfig is everything main and hotelctl read from the environment.
type AppConfig struct {
	Port                 string
	JWTSecret            string
	JWTTTL               time.Duration
	PricingLocation      *time.Location
	DefaultAdminEmail    string
	DefaultAdminPassword string
	RepriceWorkers       int
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is not set")

// LoadAppConfig reads the process environment. Call godotenv before it if a
// .env file should be honoured.
func LoadAppConfig() (AppConfig, error) {
	cfg := AppConfig{
		Port:                 utils.EnvOrDefault("PORT", "5000"),
		JWTSecret:            strings.TrimSpace(utils.EnvOrDefault("JWT_SECRET", "")),
		JWTTTL:               utils.EnvHours("JWT_TTL_HOURS", 7*24*time.Hour),
		PricingLocation:      loadLocation(utils.EnvOrDefault("PRICING_TIMEZONE", "")),
		DefaultAdminEmail:    utils.EnvOrDefault("DEFAULT_ADMIN_EMAIL", ""),
		DefaultAdminPassword: utils.EnvOrDefault("DEFAULT_ADMIN_PASSWORD", ""),
		RepriceWorkers:       utils.EnvInt("REPRICE_WORKERS", 4),
	}
	if cfg.RepriceWorkers < 1 {
		cfg.RepriceWorkers = 1
	}
	if cfg.JWTSecret == "" {
		return cfg, ErrMissingJWTSecret
	}
	return cfg, nil
}

// LoadLocation resolves an IANA zone name. An empty name means the process's
// local zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func loadLocation(name string) *time.Location {
	loc, err := LoadLocation(name)
	if err != nil {
		log.Printf("⚠️  PRICING_TIMEZONE=%q is not a known time zone, using local time: %v", name, err)
		return time.Local
	}
	return loc
}
