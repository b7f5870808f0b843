package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	JWTSecret    string
	TokenTTL     time.Duration
	QueryTimeout time.Duration
	GinMode      string
}

// Load resolves configuration from the environment once at startup.
// A .env file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		DBDriver:     getEnv("DB_DRIVER", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "teamtrack"),
		DBPassword:   getEnv("DB_PASSWORD", "teamtrack"),
		DBName:       getEnv("DB_NAME", "teamtrack"),
		JWTSecret:    getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 24*time.Hour),
		QueryTimeout: getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		GinMode:      getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
