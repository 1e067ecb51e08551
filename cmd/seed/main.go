package main

import (
	"context"
	"os"

	"marketplace-api/internal/config"
	"marketplace-api/internal/db"
	"marketplace-api/internal/seed"
	"marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Service: "seed"}).Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Service: "seed", Level: cfg.LogLevel})

	ctx := context.Background()
	gdb, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Error("connect db", "error", err)
		os.Exit(1)
	}

	if err := seed.Apply(ctx, gdb); err != nil {
		log.Error("seed apply", "error", err)
		os.Exit(1)
	}

	log.Info("seed applied")
}
