package database

import (
	"fmt"
	"log/slog"
	"time"

	"yamdb/internal/config"
	"yamdb/internal/microservices/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm opens the Postgres pool behind GORM and verifies it with a ping.
func OpenGorm(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsDevelopment() && cfg.LogLevel == "debug" {
		level = logger.Info
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelDebug),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		// close the handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// genre_titles is the explicit GenreTitle model, not GORM's implicit one
	if err := gdb.SetupJoinTable(&models.Title{}, "Genres", &models.GenreTitle{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("setup genre_titles join table: %w", err)
	}

	log.Info("Connected to the database successfully")
	return gdb, nil
}

// AutoMigrate creates or updates the schema. gdb must come from OpenGorm so
// genre_titles gets the GenreTitle definition and its FK actions.
func AutoMigrate(gdb *gorm.DB, log *slog.Logger) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.GenreTitle{},
		&models.Review{},
		&models.Comment{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func Close(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
}
