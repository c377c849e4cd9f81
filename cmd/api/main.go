package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gridline.opentransit.org/internal/appconf"
	"gridline.opentransit.org/internal/gtfs"
	"gridline.opentransit.org/internal/logging"
)

func main() {
	// A missing .env file is fine; flags and real env vars still apply.
	_ = godotenv.Load()

	var (
		port       = flag.Int("port", 4000, "API server port")
		envFlag    = flag.String("env", "development", "Environment (development|test|production)")
		gtfsURL    = flag.String("gtfs-url", os.Getenv("GTFS_URL"), "GTFS feed URL or local zip path")
		dataPath   = flag.String("data-path", ":memory:", "Derived-results SQLite path")
		apiKeys    = flag.String("api-keys", os.Getenv("API_KEYS"), "Comma-separated API keys")
		rateLimit  = flag.Int("rate-limit", 100, "Requests per second per API key")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		configFile = flag.String("config-file", "", "JSON or YAML config file; overrides other flags")
	)
	flag.Parse()

	var cfg appconf.Config
	var gtfsCfg gtfs.Config

	if *configFile != "" {
		fileConfig, err := appconf.LoadFromFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config file: %v\n", err)
			os.Exit(1)
		}
		cfg = fileConfig.ToAppConfig()
		gtfsCfg = gtfs.ConfigFromData(fileConfig.ToGtfsConfigData())
	} else {
		env := appconf.EnvFlagToEnvironment(*envFlag)
		cfg = appconf.Config{
			Port:      *port,
			Env:       env,
			ApiKeys:   ParseAPIKeys(*apiKeys),
			Verbose:   *verbose,
			RateLimit: *rateLimit,
		}
		gtfsCfg = gtfs.ConfigFromData(appconf.GtfsConfigData{
			GtfsURL:      *gtfsURL,
			GTFSDataPath: *dataPath,
			Env:          env,
			Verbose:      *verbose,
		})
	}

	if err := run(cfg, gtfsCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg appconf.Config, gtfsCfg gtfs.Config) error {
	coreApp, err := BuildApplication(cfg, gtfsCfg)
	if err != nil {
		return err
	}
	defer coreApp.GtfsManager.Shutdown()
	defer coreApp.Metrics.Shutdown()

	srv, api := CreateServer(coreApp, cfg)
	defer api.Shutdown()

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logging.LogOperation(coreApp.Logger, "shutting_down", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logging.LogOperation(coreApp.Logger, "server_starting",
		slog.String("addr", srv.Addr),
		slog.String("env", cfg.Env.String()))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}

	logging.LogOperation(coreApp.Logger, "server_stopped")
	return nil
}
