package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration, loaded from the environment
type Config struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"8080"`

	// StorageType selects the storage backend: memory, redis or sqlite
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"gamehub.db"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
