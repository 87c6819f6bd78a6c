// Package database owns the persistent store: opening the embedded
// SQLite file (or a Postgres database), migrating the schema, seeding
// the credit singleton, and copying the store file for backups.
package database

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"centavo/internal/config"
	"centavo/internal/logger"
	"centavo/internal/models"
)

// Manager handles database lifecycle operations.
type Manager struct {
	db     *gorm.DB
	driver string
	path   string
}

// NewManager opens the configured store. The sqlite DSN requests
// _txlock=immediate so every write transaction takes the write lock up
// front: the credit-balance read and its update can never be split by a
// concurrent writer.
func NewManager(cfg *config.Config) (*Manager, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "sqlite":
		dsn := fmt.Sprintf("%s?_txlock=immediate&_foreign_keys=on", cfg.DBPath)
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// A single connection serializes writers at the pool level too.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, driver: cfg.DBDriver, path: cfg.DBPath}, nil
}

// Migrate creates or updates the schema and seeds the credit singleton
// with the configured default limit if the table is empty.
func (m *Manager) Migrate(defaultCreditLimit int64) error {
	logger.Get().Info("Running database migrations...")

	if err := m.db.AutoMigrate(
		&models.Transaction{},
		&models.CreditConfig{},
		&models.SavingsPlan{},
		&models.Budget{},
		&models.RecurringCharge{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	var count int64
	if err := m.db.Model(&models.CreditConfig{}).Count(&count).Error; err != nil {
		return fmt.Errorf("credit config check failed: %w", err)
	}
	if count == 0 {
		seed := &models.CreditConfig{Limit: defaultCreditLimit, Used: 0}
		if err := m.db.Create(seed).Error; err != nil {
			return fmt.Errorf("credit config seed failed: %w", err)
		}
		logger.Get().Infow("seeded credit configuration", "limit", defaultCreditLimit)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// BackupTo copies the raw store file into targetDir under a timestamped
// name and returns the resulting path. Only the embedded sqlite store
// has a file to copy.
func (m *Manager) BackupTo(targetDir string) (string, error) {
	if m.driver != "sqlite" {
		return "", fmt.Errorf("file backup is only supported for the sqlite store, not %q", m.driver)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	src, err := os.Open(m.path)
	if err != nil {
		return "", fmt.Errorf("failed to open store file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	targetPath := filepath.Join(targetDir, name)

	dst, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy store file: %w", err)
	}

	logger.Get().Infow("database backup created", "path", targetPath)
	return targetPath, nil
}
