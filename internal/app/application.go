package app

import (
	"log/slog"

	"gridline.opentransit.org/internal/appconf"
	"gridline.opentransit.org/internal/clock"
	"gridline.opentransit.org/internal/gtfs"
	"gridline.opentransit.org/internal/metrics"
)

// Application holds the dependencies shared by HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	GtfsConfig  gtfs.Config
	Logger      *slog.Logger
	GtfsManager *gtfs.Manager
	Clock       clock.Clock
	Metrics     *metrics.Metrics
}
