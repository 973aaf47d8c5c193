package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	AdminID  int64  `envconfig:"ADMIN_ID" default:"0"`
	DBPath   string `envconfig:"DB_PATH" default:"./data/ramadan.db"`
	TZ       string `envconfig:"TZ" default:"Asia/Tashkent"` // single configured zone for all targets
	Country  string `envconfig:"COUNTRY" default:"UZ"`       // aladhan country parameter
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`   // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`  // healthz
}

// Load reads environment variables into Config and validates the timezone.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if _, err := time.LoadLocation(cfg.TZ); err != nil {
		return cfg, err
	}
	return cfg, nil
}
