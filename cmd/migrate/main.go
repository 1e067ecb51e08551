package main

import (
	"context"
	"os"

	"marketplace-api/internal/config"
	"marketplace-api/internal/migrate"
	"marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Service: "migrate"}).Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Service: "migrate", Level: cfg.LogLevel})

	if err := migrate.Apply(context.Background(), cfg.DBConnString); err != nil {
		log.Error("apply migrations", "error", err)
		os.Exit(1)
	}

	log.Info("migrations applied")
}
