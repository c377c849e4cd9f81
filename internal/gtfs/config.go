package gtfs

import (
	"gridline.opentransit.org/internal/appconf"
	"gridline.opentransit.org/internal/timetable"
)

// Config holds GTFS configuration for the manager.
type Config struct {
	GtfsURL               string
	StaticAuthHeaderKey   string
	StaticAuthHeaderValue string

	// GTFSDataPath is the SQLite path of the derived-results store.
	GTFSDataPath string

	// RefreshIntervalHours controls the periodic re-download. Zero means
	// every 24 hours. Local files never refresh.
	RefreshIntervalHours int

	// GroupRoutesByShortName folds routes sharing an agency and short
	// name into one route key.
	GroupRoutesByShortName bool

	// Column-ordering overrides. Zero values take the package defaults.
	OrderingMaxPasses     int
	OrderingMarginMinutes int
	OrderingVoteThreshold int

	// ShapeTolerance is the default simplification tolerance in degrees.
	ShapeTolerance float64

	Env     appconf.Environment
	Verbose bool
}

// ConfigFromData builds a Config from the file-config subset.
func ConfigFromData(d appconf.GtfsConfigData) Config {
	return Config{
		GtfsURL:                d.GtfsURL,
		StaticAuthHeaderKey:    d.StaticAuthHeaderKey,
		StaticAuthHeaderValue:  d.StaticAuthHeaderValue,
		GTFSDataPath:           d.GTFSDataPath,
		RefreshIntervalHours:   d.RefreshIntervalHours,
		GroupRoutesByShortName: d.GroupRoutesByShortName,
		OrderingMaxPasses:      d.OrderingMaxPasses,
		OrderingMarginMinutes:  d.OrderingMarginMinutes,
		OrderingVoteThreshold:  d.OrderingVoteThreshold,
		ShapeTolerance:         d.ShapeTolerance,
		Env:                    d.Env,
		Verbose:                d.Verbose,
	}
}

// OrderParams returns the configured column-ordering parameters.
func (config Config) OrderParams() timetable.OrderParams {
	return timetable.OrderParams{
		MaxPasses:     config.OrderingMaxPasses,
		MarginMinutes: config.OrderingMarginMinutes,
		VoteThreshold: config.OrderingVoteThreshold,
	}
}
