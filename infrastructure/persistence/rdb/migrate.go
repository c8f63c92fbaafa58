package rdb

import (
	"embed"
	"fmt"

	"storefront/config"
	"storefront/pkg/logger"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrations embed.FS

// MigrationDir embedded migration directory for a database type
func MigrationDir(databaseType string) (string, error) {
	switch databaseType {
	case config.DatabaseMySQL, config.DatabasePostgres:
		return "migrations/" + databaseType, nil
	default:
		return "", fmt.Errorf("no migrations for database type %q", databaseType)
	}
}

// Migrate applies every pending migration for databaseType
func Migrate(db *gorm.DB, databaseType string) error {
	dir, err := MigrationDir(databaseType)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: logger.With(zap.String("component", "goose")).Sugar()})
	if err := goose.SetDialect(databaseType); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", databaseType, err)
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return err
	}
	logger.Info("Database schema up to date", zap.String("type", databaseType), zap.Int64("version", version))
	return nil
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }
