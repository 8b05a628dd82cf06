package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"cyclesense-backend/pkg/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrMissingDSN = errors.New("DATABASE_URL is required")

// NewConnection opens the database selected by DB_DRIVER.
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DBDriver, err)
	}

	log.Printf("[DB] connected using %s driver", cfg.DBDriver)
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		if dsn == "" {
			return nil, ErrMissingDSN
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		if dsn == "" {
			dsn = "cyclesense.db"
		}
		return sqlite.Open(withForeignKeys(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// withForeignKeys turns on foreign key enforcement for every pooled sqlite
// connection, otherwise ON DELETE CASCADE is ignored.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates the tables for the given models in order.
// Parents must come before the tables that reference them.
func Migrate(db *gorm.DB, models ...interface{}) error {
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	return nil
}
