package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"NAVMENU_DB_PATH" envDefault:"./data/navmenu.db"`
	ServerHost string `env:"NAVMENU_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"NAVMENU_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"NAVMENU_ENV" envDefault:"development"`
	LogLevel   string `env:"NAVMENU_LOG_LEVEL" envDefault:"info"`

	// Booking store configuration. The booking database is external
	// (MySQL) and read-only from this service's point of view.
	BookingDSN         string `env:"NAVMENU_BOOKING_DSN,required,notEmpty"`
	BookingTablePrefix string `env:"NAVMENU_BOOKING_TABLE_PREFIX" envDefault:"wp_amelia_"`

	// MenuLocation is the menu placement the booking augmentation targets.
	MenuLocation string `env:"NAVMENU_MENU_LOCATION" envDefault:"primary-menu"`

	// Rate limiting for the public menu API.
	RateLimitRPS   float64 `env:"NAVMENU_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"NAVMENU_RATE_LIMIT_BURST" envDefault:"20"`

	// Seeding configuration
	DoSeed bool `env:"NAVMENU_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.MenuLocation == "" {
		return nil, fmt.Errorf("NAVMENU_MENU_LOCATION must not be empty")
	}
	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("NAVMENU_RATE_LIMIT_RPS must be positive, got %v", cfg.RateLimitRPS)
	}

	return cfg, nil
}
