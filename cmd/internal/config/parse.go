package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Parse reads the configuration from the environment. A .env file is
// loaded first when present. In production the variables stored in SSM
// Parameter Store are exported and the environment is read again.
func Parse(ctx context.Context) (Config, error) {
	_ = godotenv.Load()

	cfg, err := readEnv()
	if err != nil {
		return Config{}, err
	}

	if !cfg.App.IsProduction() {
		return cfg, nil
	}

	if err := loadProdEnv(ctx, cfg.AWS); err != nil {
		return Config{}, fmt.Errorf("load prod env: %w", err)
	}
	return readEnv()
}

func readEnv() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %w", err)
	}
	return cfg, nil
}
