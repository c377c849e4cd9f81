package timetabledb

import (
	"fmt"
	"log/slog"

	"gridline.opentransit.org/internal/logging"
)

// TableCounts reports row counts for the store's tables, for the debug
// surface. Unknown tables are ignored.
func (c *Client) TableCounts() (map[string]int, error) {
	rows, err := c.DB.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("failed to query table names: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows,
		slog.Default().With(slog.String("component", "debugging")),
		"database_rows")

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}

	counts := make(map[string]int)

	tableCountQueries := map[string]string{
		"import_metadata": "SELECT COUNT(*) FROM import_metadata",
		"trip_directions": "SELECT COUNT(*) FROM trip_directions",
		"station_tiers":   "SELECT COUNT(*) FROM station_tiers",
		"inference_stats": "SELECT COUNT(*) FROM inference_stats",
	}

	for _, table := range tables {
		query, ok := tableCountQueries[table]
		if !ok {
			continue
		}

		var count int
		if err := c.DB.QueryRow(query).Scan(&count); err != nil {
			return nil, err
		}
		counts[table] = count
	}

	return counts, nil
}
