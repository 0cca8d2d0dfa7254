package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/msepulse/config"
	"github.com/guttosm/msepulse/internal/api"
	"github.com/guttosm/msepulse/internal/service"
	"github.com/guttosm/msepulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Builds the tickers and prices repositories on the shared pool.
//   - Wires the ticker resolver and price service.
//   - Configures the Gin router and registers health and readiness probes.
//   - Provides a cleanup function that closes the pool.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	tickers := storage.NewTickersRepository(db)
	prices := storage.NewPricesRepository(db)

	resolver := service.NewTickerResolver(tickers)
	priceSvc := service.NewPriceService(resolver, prices, tickers)

	handler := api.NewHandler(resolver, priceSvc)
	router := api.NewRouter(handler, api.RouterSettings{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		TrustedProxies: cfg.Server.TrustedProxies,
	})

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
