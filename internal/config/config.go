package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"hamrotrack"`
	}

	Gateway struct {
		URL         string        `envconfig:"GATEWAY_URL" required:"true"`
		AnonKey     string        `envconfig:"GATEWAY_ANON_KEY" required:"true"`
		AccessToken string        `envconfig:"GATEWAY_ACCESS_TOKEN"`
		Timeout     time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
