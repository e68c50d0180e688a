package config

import (
	"os"
)

// Config holds the runtime configuration read from the environment.
type Config struct {
	// Path to the products YAML file
	ProductsPath string

	// DSN for the run-history database; a sqlite file path by default,
	// a postgres:// URL switches drivers
	DatabaseURL string

	// Slack bot token used by the transport layer
	SlackToken string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		ProductsPath: getEnvOrDefault("ALARMSCOPE_CONFIG", "config/base.yaml"),
		DatabaseURL:  getEnvOrDefault("DATABASE_URL", "alarmscope.db"),
		SlackToken:   os.Getenv("SLACK_TOKEN"),
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
