// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Store. Driver "sqlite" keeps everything in a single local file
	// (the default, and the only mode the backup operation supports);
	// "postgres" targets a hosted database.
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session tokens issued after the PIN gate.
	JWTSecret        string
	JWTExpirationDur time.Duration

	// PIN gate file, kept outside the ledger store.
	AuthConfigPath string

	// Target directory for store backups.
	BackupDir string

	// Credit line limit seeded on first initialization, in cents.
	CreditDefaultLimit int64
}

var appConfig *Config

// Load reads configuration from environment variables, falling back to
// development defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "centavo.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "centavo"),
		DBPassword: getEnv("DB_PASSWORD", "centavo"),
		DBName:     getEnv("DB_NAME", "centavo"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		AuthConfigPath: getEnv("AUTH_CONFIG_PATH", filepath.Join(home, ".centavo_auth.json")),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	limitStr := getEnv("CREDIT_DEFAULT_LIMIT", "500.00")
	limit, err := decimal.NewFromString(limitStr)
	if err != nil || limit.IsNegative() {
		log.Printf("Warning: invalid CREDIT_DEFAULT_LIMIT value '%s', falling back to 500.00\n", limitStr)
		limit = decimal.NewFromInt(500)
	}
	config.CreditDefaultLimit = limit.Shift(2).IntPart()

	appConfig = config
	return config, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
