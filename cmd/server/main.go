package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-market-service/internal/adapters/cache"
	"campus-market-service/internal/adapters/marketapi"
	"campus-market-service/internal/adapters/repositories"
	"campus-market-service/internal/api"
	"campus-market-service/internal/config"
	"campus-market-service/internal/domain"
	"campus-market-service/internal/platform/db"
	"campus-market-service/internal/platform/obs"
	"campus-market-service/internal/ports"
	"campus-market-service/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, market REST API) behind ports
// and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err == nil {
		err = cfg.RequireMarketAPI()
	}
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schedule, err := domain.LoadFridayClose(cfg.DeadlineZone)
	if err != nil {
		return err
	}

	client, err := marketapi.NewClient(cfg.MarketAPI.URL, logger, marketapi.WithTimeout(cfg.MarketAPI.Timeout))
	if err != nil {
		return err
	}

	var marketAPI ports.MarketAPI = client
	if cfg.RedisURL != "" {
		rdb, err := db.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		marketAPI = marketapi.NewCachingAPI(client, cache.NewRedisMarketCache(rdb, cfg.CacheTTL), logger)
	} else {
		logger.Warn("REDIS_URL not set, market cache disabled")
	}

	var receipts ports.ReceiptRepository
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			return err
		}
		receipts = repositories.NewPostgresReceiptRepository(conn)
	} else {
		logger.Warn("DATABASE_URL not set, trade receipts disabled")
	}

	clock := services.SystemClock{}
	router := api.NewRouter(api.Deps{
		Deadline:    services.NewDeadlineService(clock, schedule),
		Signup:      services.NewSignupService(marketAPI, cfg.AllowedEmailDomains, logger),
		Markets:     services.NewMarketService(marketAPI, clock),
		Trades:      services.NewTradeService(marketAPI, receipts, clock, logger),
		Portfolio:   services.NewPortfolioService(marketAPI, clock, logger),
		Leaderboard: services.NewLeaderboardService(marketAPI),
		Clock:       clock,
		Logger:      logger,
	})

	// No WriteTimeout: the countdown stream is long-lived.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("deadline_zone", cfg.DeadlineZone))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
