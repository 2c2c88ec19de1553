package api

import (
	"net/http"
	"time"

	"campus-market-service/internal/api/handlers"
	"campus-market-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Deadline    *services.DeadlineService
	Signup      *services.SignupService
	Markets     *services.MarketService
	Trades      *services.TradeService
	Portfolio   *services.PortfolioService
	Leaderboard *services.LeaderboardService
	Clock       services.Clock

	// StreamInterval is the countdown event period; zero means one second.
	StreamInterval time.Duration
	Logger         *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	deadlineHandler := &handlers.DeadlineHandler{Service: d.Deadline, Interval: d.StreamInterval, Logger: logger}
	signupHandler := &handlers.SignupHandler{Service: d.Signup, Logger: logger}
	marketHandler := &handlers.MarketHandler{Service: d.Markets, Clock: d.Clock, Logger: logger}
	tradeHandler := &handlers.TradeHandler{Service: d.Trades, Logger: logger}
	portfolioHandler := &handlers.PortfolioHandler{Service: d.Portfolio, Logger: logger}
	leaderboardHandler := &handlers.LeaderboardHandler{Service: d.Leaderboard, Logger: logger}

	mux := chi.NewRouter()
	mux.Use(requestIDMiddleware, loggingMiddleware(logger), middleware.Recoverer)

	mux.Get("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/deadline", deadlineHandler.Get)
		rt.Get("/deadline/stream", deadlineHandler.Stream)

		rt.Post("/signup/start", signupHandler.Start)
		rt.Post("/signup/complete", signupHandler.Complete)

		rt.Get("/markets", marketHandler.List)
		rt.Post("/trades", tradeHandler.Place)
		rt.Get("/receipts", tradeHandler.Receipts)

		rt.Get("/portfolio", portfolioHandler.Portfolio)
		rt.Get("/ledger", portfolioHandler.Ledger)
		rt.Get("/leaderboard", leaderboardHandler.List)
	})

	return mux
}
