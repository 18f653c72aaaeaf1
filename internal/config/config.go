// Package config holds runtime settings for the bookshelf server,
// populated from environment variables with development defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds every tunable the server reads at startup.
//
// Fields:
//   - Addr: HTTP bind address.
//   - DBDriver: "postgres" (production) or "sqlite" (local development).
//   - DBHost/DBPort/DBUser/DBPassword/DBName/DBSSLMode: Postgres settings.
//   - SQLitePath: database file when DBDriver is "sqlite".
//   - SessionSecret: HMAC secret signing session cookie tokens.
//   - SessionTTL: session lifetime.
//   - BcryptCost: work factor for password hashing.
type Config struct {
	Addr string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	SessionSecret string
	SessionTTL    time.Duration

	BcryptCost int
}

// Load reads configuration from the environment, falling back to
// development defaults. NOTE: the default session secret is insecure and
// must be overridden in production.
func Load() *Config {
	return &Config{
		Addr:          getEnv("ADDR", ":8080"),
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "bookshelf"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/bookshelf.db"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		BcryptCost:    getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

// PostgresDSN assembles the pgx connection string from the individual
// database settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
