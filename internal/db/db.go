package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/office-master/internal/config"
	"github.com/BruksfildServices01/office-master/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := db.Exec(
		`UPDATE workshops SET timezone = ? WHERE timezone IS NULL OR timezone = ''`,
		cfg.DefaultTimezone,
	).Error; err != nil {
		return nil, fmt.Errorf("backfill timezone: %w", err)
	}

	return db, nil
}

// Migrate cria/atualiza todas as tabelas do sistema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Workshop{},
		&models.User{},
		&models.Client{},
		&models.ServiceOrder{},
		&models.Appointment{},
		&models.InventoryItem{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
