package main

//
//  @title           msepulse API
//  @version         1.0
//  @description     Malawi Stock Exchange company reference data and daily price queries.
//  @termsOfService  https://github.com/guttosm/msepulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/msepulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        companies
//  @tag.description Listed companies and their reference data
//
//  @tag.name        prices
//  @tag.description Daily prices, calendar periods and latest change
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/msepulse/config"
	_ "github.com/guttosm/msepulse/docs" // swagger docs
	"github.com/guttosm/msepulse/internal/app"
	"github.com/guttosm/msepulse/internal/ingestion"
	"github.com/guttosm/msepulse/internal/logger"
)

// options are the parsed command line flags.
type options struct {
	mode     string
	dir      string
	parallel int
	force    bool
	port     string
}

// dbOpener is an indirection for tests; defaults to app.InitPostgres.
var dbOpener = app.InitPostgres

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// withDB opens the configured database, runs fn and closes the pool.
func withDB(fn func(db *sql.DB) error) error {
	db, err := dbOpener(config.AppConfig)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer func() { _ = db.Close() }()
	return fn(db)
}

// run executes one mode to completion. API mode blocks until a shutdown signal.
func run(ctx context.Context, opts options) error {
	switch opts.mode {
	case "migrate":
		logger.L().Info().Msg("running migrations")
		return withDB(func(db *sql.DB) error {
			return app.RunMigrations(ctx, db)
		})

	case "import":
		logger.L().Info().Str("dir", opts.dir).Msg("running import")
		return withDB(func(db *sql.DB) error {
			return ingestion.ProcessDirectory(ctx, opts.dir, db, opts.parallel, opts.force)
		})

	case "api":
		logger.L().Info().Msg("starting API server")
		router, cleanup, err := app.InitializeApp()
		if err != nil {
			return fmt.Errorf("app init: %w", err)
		}
		server := startServer(router, opts.port)
		gracefulShutdown(ctx, server, cleanup)
		return nil

	default:
		return fmt.Errorf("unknown mode %q (want api, migrate or import)", opts.mode)
	}
}

// main is the entry point of the msepulse application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API (default).
//   - migrate: Applies the embedded schema migrations.
//   - import:  Loads tickers.csv and daily_prices*.csv files from --dir.
//
// Flags:
//   - --mode:     Execution mode. Default: "api".
//   - --dir:      Directory containing the CSV input files. Default: "./data/input".
//   - --parallel: Price files imported concurrently (0 = auto, up to 4).
//   - --force:    Re-import files already recorded in import_log, replacing their rows.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	var opts options
	flag.StringVar(&opts.mode, "mode", "api", "Mode: api, migrate or import")
	flag.StringVar(&opts.dir, "dir", "./data/input", "Directory with tickers.csv and daily_prices*.csv")
	flag.IntVar(&opts.parallel, "parallel", 0, "How many price files to import concurrently (0=auto, up to 4)")
	flag.BoolVar(&opts.force, "force", false, "Re-import files already in import_log, replacing their rows")
	flag.StringVar(&opts.port, "port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	if err := run(ctx, opts); err != nil {
		logger.L().Fatal().Err(err).Str("mode", opts.mode).Msg("run failed")
	}
	logger.L().Info().Str("mode", opts.mode).Msg("done")
}
