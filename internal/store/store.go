// Package store persists user credential records behind a GORM connection
// pool. It owns the users table schema, auto-migration, and translation of
// driver errors into the store's sentinel errors.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/skillsenselab/authsvc/internal/logger"
)

// Store wraps a GORM database handle with pooling and migrations applied.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
	cfg Config
}

// Open connects to the database, configures the connection pool, verifies
// the connection with a ping, and runs auto-migration when enabled.
func Open(ctx context.Context, dialector gorm.Dialector, cfg Config, log *logger.Logger) (*Store, error) {
	cfg.ApplyDefaults()

	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log, slowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: access connection pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if lifetime, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(lifetime)
	}
	if idleTime, err := time.ParseDuration(cfg.ConnMaxIdleTime); err == nil {
		sqlDB.SetConnMaxIdleTime(idleTime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("store: ping database: %w", err)
	}

	s := &Store{db: db, log: log.WithComponent("store"), cfg: cfg}

	if cfg.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(&User{}); err != nil {
			return nil, fmt.Errorf("store: auto-migrate: %w", err)
		}
		s.log.Info("Auto-migration completed")
	}

	s.log.Info("Database connection established")
	return s, nil
}

// Ping verifies the database connection. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
