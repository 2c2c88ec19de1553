package main

import (
	"context"
	"database/sql"

	"campus-market-service/internal/adapters/repositories"
	"campus-market-service/internal/config"
	"campus-market-service/internal/platform/db"
	"campus-market-service/internal/platform/obs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err == nil {
		err = cfg.RequireDatabase()
	}
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("no .env file found (using environment variables)")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "")
	if err := initAndSeed(ctx, logger, conn, seedPath); err != nil {
		logger.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, logger *zap.Logger, conn *sql.DB, seedPath string) error {
	logger.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	logger.Info("schema ready")

	if seedPath == "" {
		logger.Info("SEED_PATH not set, skipping seed")
		return nil
	}

	logger.Info("seeding trade receipts", zap.String("path", seedPath))
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return err
	}
	logger.Info("seeding complete")

	return nil
}
