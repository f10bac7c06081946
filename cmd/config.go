package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"mes/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort          string
	DBDriver          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	LogLevel          string
	ReconcileSchedule string
}

// LoadConfig reads envFile into the environment, if it exists, and builds
// the Config from environment variables. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	schedule, ok := os.LookupEnv("RECONCILE_SCHEDULE")
	if !ok {
		schedule = jobs.DefaultReconcileSchedule
	}

	return Config{
		HTTPPort:          envOr("HTTP_PORT", "8080"),
		DBDriver:          envOr("DB_DRIVER", "pgx"),
		DBHost:            envOr("DB_HOST", "localhost"),
		DBPort:            envOr("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         envOr("DB_SSLMODE", "disable"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		ReconcileSchedule: schedule,
	}, nil
}

// DSN is the key=value connection string understood by both pgx and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
