package cmd

import (
	"context"
	"fmt"
	"time"

	"storefront/config"
	"storefront/infrastructure/persistence/rdb"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectTimeout = 5 * time.Second

// OpenDatabase connects to the configured relational database, verifies the
// connection and applies pending migrations when database.migrate is set.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := rdb.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Database.Type, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx, db); err != nil {
		_ = rdb.Close(db)
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.Database.Type, err)
	}

	logger.Info("Connected to database",
		zap.String("type", cfg.Database.Type),
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database))

	if cfg.Database.Migrate {
		if err := rdb.Migrate(db, cfg.Database.Type); err != nil {
			_ = rdb.Close(db)
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
