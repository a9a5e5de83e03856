package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration, read from environment
// variables with sensible defaults.
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Email (Amazon SES). Leaving FromEmail empty disables sending.
	AWSRegion string
	FromEmail string
	FromName  string

	// Daily report sweep.
	ReportInterval   time.Duration
	ReportTimeout    time.Duration
	LogRetentionDays int

	// Admin API.
	AdminUsername     string
	AdminPasswordHash string
	TokenSecret       string
	TokenLifetime     time.Duration

	// CORS.
	AllowedOrigins []string
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./littlestar.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		FromEmail: getEnv("SES_FROM_EMAIL", ""),
		FromName:  getEnv("SES_FROM_NAME", "Little Star"),

		ReportInterval:   getEnvDuration("REPORT_INTERVAL", 24*time.Hour),
		ReportTimeout:    getEnvDuration("REPORT_TIMEOUT", 30*time.Second),
		LogRetentionDays: getEnvInt("LOG_RETENTION_DAYS", 30),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenSecret:       getEnv("TOKEN_SECRET", ""),
		TokenLifetime:     getEnvDuration("TOKEN_LIFETIME", 12*time.Hour),

		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "*")},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
