package timetabledb

import "gridline.opentransit.org/internal/appconf"

const defaultBulkInsertBatchSize = 3000

// Config holds the settings for the derived-results store.
type Config struct {
	DBPath              string
	Env                 appconf.Environment
	BulkInsertBatchSize int
	verbose             bool
}

// NewConfig creates a store configuration for the given database path
// and environment.
func NewConfig(dbPath string, env appconf.Environment, verbose bool) Config {
	return Config{
		DBPath:  dbPath,
		Env:     env,
		verbose: verbose,
	}
}

// GetBulkInsertBatchSize returns the rows-per-statement size for bulk
// writes, falling back to the default when unset.
func (c Config) GetBulkInsertBatchSize() int {
	if c.BulkInsertBatchSize > 0 {
		return c.BulkInsertBatchSize
	}
	return defaultBulkInsertBatchSize
}
