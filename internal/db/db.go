package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/menu-sites/internal/config"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DBUrl)
	if err != nil {
		slog.Error("failed to connect database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		slog.Error("failed to migrate", slog.Any("error", err))
		os.Exit(1)
	}

	return db
}

func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
	})
}

// Uniqueness only holds among non-deleted rows, which AutoMigrate tags
// cannot express.
var partialIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_restaurants_subdomain_live
        ON restaurants (subdomain) WHERE deleted_at IS NULL AND subdomain IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_restaurants_custom_domain_live
        ON restaurants (custom_domain) WHERE deleted_at IS NULL AND custom_domain IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_menus_restaurant_slug_live
        ON menus (restaurant_id, slug) WHERE deleted_at IS NULL AND slug IS NOT NULL`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Restaurant{},
		&models.Menu{},
		&models.Section{},
		&models.MenuItem{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create partial index: %w", err)
		}
	}

	return nil
}
