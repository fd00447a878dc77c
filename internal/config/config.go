package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	StoreBackend string // "file" or "postgres"
	StoreDir     string
	DatabaseURL  string
	RedisURL     string

	CourierBaseURL  string
	CourierUser     string
	CourierPassword string

	InputPath  string
	ReportPath string

	CollectBatchSize int
	CollectPause     time.Duration
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	if err := godotenv.Load(); err != nil {
		// Don't fail if .env is not present, just log it
		// log.Printf("Warning: .env file not found, reading from environment")
	}

	return &Config{
		StoreBackend: getEnv("STORE_BACKEND", "file"),
		StoreDir:     getEnv("STORE_DIR", "store"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),

		CourierBaseURL:  getEnv("COURIER_BASE_URL", "http://www.anjanicourier.in"),
		CourierUser:     getEnv("COURIER_USER", ""),
		CourierPassword: getEnv("COURIER_PASSWORD", ""),

		InputPath:  getEnv("INPUT_PATH", "pincodes.csv"),
		ReportPath: getEnv("REPORT_PATH", "store/anjani_courier_data.xlsx"),

		CollectBatchSize: getEnvInt("COLLECT_BATCH_SIZE", 20),
		CollectPause:     time.Duration(getEnvInt("COLLECT_PAUSE_SECONDS", 20)) * time.Second,
	}, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
