package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"storefront/cmd"
	"storefront/config"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	cmd.WatchLogLevels(configPath, cfg)

	app, err := cmd.NewBuilder(cfg).Build()
	if err != nil {
		logger.Fatal("Failed to build application", zap.Error(err))
	}

	if err := app.Run(context.Background()); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}
