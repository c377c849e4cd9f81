package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"gridline.opentransit.org/internal/app"
	"gridline.opentransit.org/internal/appconf"
	"gridline.opentransit.org/internal/clock"
	"gridline.opentransit.org/internal/gtfs"
	"gridline.opentransit.org/internal/logging"
	"gridline.opentransit.org/internal/metrics"
	"gridline.opentransit.org/internal/restapi"
	"gridline.opentransit.org/internal/webui"
)

// ParseAPIKeys splits a comma-separated key list, trimming whitespace
// around each key.
func ParseAPIKeys(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		keys = append(keys, strings.TrimSpace(part))
	}
	return keys
}

// BuildApplication loads the feed, derives the schedule structure, and
// assembles the shared application state.
func BuildApplication(cfg appconf.Config, gtfsCfg gtfs.Config) (*app.Application, error) {
	logger := logging.NewLogger(cfg.Verbose)

	manager, err := gtfs.InitGTFSManager(gtfsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GTFS manager: %w", err)
	}

	m := metrics.NewWithLogger(logger)
	m.StartDBStatsCollector(manager.Store.DB, 15*time.Second)

	manager.RLock()
	stats := manager.InferenceStats()
	manager.RUnlock()
	m.RecordDirectionOutcomes(map[string]int{
		"provided":    stats.Provided,
		"exact":       stats.Exact,
		"subsequence": stats.Subsequence,
		"circular":    stats.Circular,
		"bearing":     stats.Bearing,
		"fallback":    stats.Fallback,
	})

	return &app.Application{
		Config:      cfg,
		GtfsConfig:  gtfsCfg,
		Logger:      logger,
		GtfsManager: manager,
		Clock:       clock.NewEnvironmentClock("GRIDLINE_CURRENT_TIME", nil),
		Metrics:     m,
	}, nil
}

// CreateServer wires the API and debug UI onto a configured HTTP
// server.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	mux := http.NewServeMux()

	api := restapi.NewRestAPI(coreApp)
	api.SetRoutes(mux)

	webui.NewWebUI(coreApp).SetRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv, api
}
