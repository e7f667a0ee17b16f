package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory-tracker/internal/config"
	applog "inventory-tracker/internal/log"
)

// Connect opens the Postgres connection pool. GORM's logger writes through
// the given slog logger.
func Connect(cfg config.Postgres, log *slog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		applog.StdLogger(log, slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  ParseLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statements for pooled transaction mode
	}), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)

	log.Info("Database connection established", slog.String("host", cfg.Host), slog.String("db", cfg.DB))
	return db, nil
}

// ParseLogLevel maps silent, error, warn and info to GORM levels. Anything
// else falls back to warn.
func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
