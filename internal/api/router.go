package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/msepulse/internal/logger"
	"github.com/guttosm/msepulse/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterSettings carries the request-level limits applied by NewRouter.
type RouterSettings struct {
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustedProxies lists the proxies allowed to set X-Forwarded-For.
	// Empty means the client IP is always the connection's remote address.
	TrustedProxies []string
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Metrics, Recovery, ErrorHandler, RateLimiter, Timeout).
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures the company and price routes.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, settings RouterSettings) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(settings.TrustedProxies); err != nil {
		logger.L().Warn().Err(err).Strs("trusted_proxies", settings.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(middleware.NewIPRateLimiter(settings.RateLimitRPS, settings.RateLimitBurst)),
		middleware.Timeout(settings.RequestTimeout),
	)

	// ─── Ops ──────────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── API ──────────────────────────────────────
	router.GET("/", handler.Home)

	companies := router.Group("/companies")
	{
		companies.GET("", handler.ListCompanies)
		companies.GET("/:ticker", handler.GetCompany)
	}

	prices := router.Group("/prices")
	{
		prices.GET("/daily", handler.DailyPrices)
		prices.GET("/range", handler.PriceRange)
		prices.GET("/latest", handler.LatestPrice)
	}

	return router
}
