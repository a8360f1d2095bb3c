package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port               string
	Environment        string
	APIKey             string
	AdminUsername      string
	AdminPassword      string
	ForecastEngine     string
	ForecastConfidence float64
	MaxUploadMB        int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		APIKey:             getEnv("API_KEY", ""),
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "admin"),
		ForecastEngine:     getEnv("FORECAST_ENGINE", "trend"),
		ForecastConfidence: getEnvFloat("FORECAST_CONFIDENCE", 0.95),
		MaxUploadMB:        getEnvInt64("MAX_UPLOAD_MB", 10),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvInt64 gets an integer environment variable with a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
