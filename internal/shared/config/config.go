package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv       string
	HTTPAddr     string
	DatabaseURL  string   // empty selects the in-memory store
	KafkaBrokers []string // empty selects the in-process event bus
}

// Load loads configuration from environment variables, optionally seeded
// from a .env file in the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, the OS environment takes over.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	bindings := map[string]string{
		"app.env":       "APP_ENV",
		"http.addr":     "HTTP_ADDR",
		"database.url":  "DATABASE_URL",
		"kafka.brokers": "KAFKA_BROKERS",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("http.addr", ":8080")

	cfg := Config{
		AppEnv:      viper.GetString("app.env"),
		HTTPAddr:    viper.GetString("http.addr"),
		DatabaseURL: viper.GetString("database.url"),
	}

	if brokers := viper.GetString("kafka.brokers"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.AppEnv != "dev" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set when APP_ENV is %q", cfg.AppEnv)
	}

	return &cfg, nil
}
