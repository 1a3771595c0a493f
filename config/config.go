package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServiceName  string
	OTELEndpoint string
	OTELEnabled  bool
	GinMode      string
	Port         string
}

// Load loads configuration from a .env file, when present, and the environment
func Load() *Config {
	// A missing .env is fine, the process environment still applies.
	_ = godotenv.Load()

	return &Config{
		ServiceName:  getEnv("SERVICE_NAME", "upi-service"),
		OTELEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELEnabled:  getBool("OTEL_ENABLED", true),
		GinMode:      getEnv("GIN_MODE", "release"),
		Port:         getEnv("PORT", "8081"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
