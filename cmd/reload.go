package cmd

import (
	"storefront/config"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// WatchLogLevels applies log.level and database.log_level edits from the
// config file to the running process. Other settings need a restart.
func WatchLogLevels(configPath string, cfg *config.Config) {
	if !cfg.Log.Watch {
		return
	}
	err := config.Watch(configPath, func(next *config.Config) {
		logger.UpdateLevel(next.Log.Level)
		logger.UpdateGormLevel(next.Database.LogLevel)
	})
	if err != nil {
		logger.Warn("Config watch disabled", zap.Error(err))
		return
	}
	logger.Info("Watching config file for log level changes")
}
