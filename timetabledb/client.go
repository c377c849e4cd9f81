package timetabledb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver
	"gridline.opentransit.org/internal/appconf"
	"gridline.opentransit.org/internal/logging"
)

//go:embed schema.sql
var ddl string

// Client is the entry point to the derived-results store.
type Client struct {
	config      Config
	DB          *sql.DB
	Queries     *Queries
	saveRuntime time.Duration
}

// NewClient opens the database, runs migrations, and prepares the read
// statements.
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create DB: %w", err)
	}

	queries := New(db)
	if err := queries.Prepare(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to prepare statements: %w", err)
	}

	if config.verbose {
		logging.LogOperation(
			slog.Default().With(slog.String("component", "timetabledb")),
			"store_opened",
			slog.String("path", config.DBPath))
	}

	return &Client{
		config:  config,
		DB:      db,
		Queries: queries,
	}, nil
}

func (c *Client) Close() error {
	if err := c.Queries.Close(); err != nil {
		logging.LogError(
			slog.Default().With(slog.String("component", "timetabledb")),
			"Error closing prepared statements", err)
	}
	return c.DB.Close()
}

func (c *Client) GetDBPath() string {
	return c.config.DBPath
}

// Ping verifies the database connection, for the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// createDB opens a SQLite database and applies the schema. Test runs
// must use in-memory storage so state cannot leak between tests.
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test database must use in-memory storage, got path: %s", config.DBPath)
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := configureSQLitePerformance(ctx, db); err != nil {
		return nil, fmt.Errorf("error configuring SQLite performance: %w", err)
	}

	if err := performDatabaseMigration(ctx, db); err != nil {
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	configureConnectionPool(db, config)

	return db, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}

// configureSQLitePerformance applies PRAGMA settings for bulk writes of
// derived results.
func configureSQLitePerformance(ctx context.Context, db *sql.DB) error {
	pragmas := []struct {
		name        string
		description string
	}{
		{"PRAGMA cache_size=-64000", "Set cache size to 64MB"},
		{"PRAGMA temp_store=MEMORY", "Store temporary data in memory"},
	}

	logger := slog.Default().With(slog.String("component", "sqlite_performance"))

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma.name); err != nil {
			logging.LogError(logger, fmt.Sprintf("Failed to set %s", pragma.description), err)
			return fmt.Errorf("failed to execute %s: %w", pragma.name, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

// configureConnectionPool sets pool limits for SQLite. Each connection
// to a :memory: database is a separate database instance, so in-memory
// stores are limited to a single connection.
func configureConnectionPool(db *sql.DB, config Config) {
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
}
