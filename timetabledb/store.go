package timetabledb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gridline.opentransit.org/internal/logging"
	"gridline.opentransit.org/internal/timetable"
)

// SaveParams identifies the feed a derived-results save belongs to.
// The feed bytes are hashed so an unchanged feed skips the rewrite.
type SaveParams struct {
	Feed       []byte
	Source     string
	TripCount  int
	RouteCount int
	StopCount  int
}

// SaveDerivedResults replaces the stored inference output with the
// given run: one direction row per trip, one tier row per station of
// every profile, and the outcome counters. When the feed hash and
// source match the previous import the store is left untouched.
func (c *Client) SaveDerivedResults(ctx context.Context, params SaveParams, result *timetable.InferenceResult, profiles []*timetable.RouteProfile) error {
	logger := slog.Default().With(slog.String("component", "results_store"))

	startTime := time.Now()
	defer func() {
		c.saveRuntime = time.Since(startTime)
		logging.LogOperation(logger, "derived_results_save_completed",
			slog.Duration("duration", c.saveRuntime),
			slog.String("source", params.Source))
	}()

	hash := sha256.Sum256(params.Feed)
	hashStr := hex.EncodeToString(hash[:])

	existing, err := c.Queries.GetImportMetadata(ctx)
	if err == nil {
		if existing.FileHash == hashStr && existing.FileSource == params.Source {
			logging.LogOperation(logger, "feed_unchanged_skipping_save",
				slog.String("hash", hashStr[:8]))
			return nil
		}
		logging.LogOperation(logger, "feed_changed_resaving",
			slog.String("old_hash", existing.FileHash[:8]),
			slog.String("new_hash", hashStr[:8]))
		if err := c.clearDerivedResults(ctx); err != nil {
			return fmt.Errorf("error clearing derived results: %w", err)
		}
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("error checking import metadata: %w", err)
	}

	directions := collectTripDirections(result, profiles)
	if err := c.bulkInsertTripDirections(ctx, directions); err != nil {
		return fmt.Errorf("unable to save trip directions: %w", err)
	}

	if err := c.saveStationTiers(ctx, profiles); err != nil {
		return fmt.Errorf("unable to save station tiers: %w", err)
	}

	if err := c.saveInferenceStats(ctx, result.Stats); err != nil {
		return fmt.Errorf("unable to save inference stats: %w", err)
	}

	err = c.Queries.UpsertImportMetadata(ctx, UpsertImportMetadataParams{
		FileHash:   hashStr,
		FileSource: params.Source,
		TripCount:  int64(params.TripCount),
		RouteCount: int64(params.RouteCount),
		StopCount:  int64(params.StopCount),
		ImportTime: time.Now().Unix(),
	})
	if err != nil {
		logging.LogError(logger, "Error updating import metadata", err)
		return fmt.Errorf("error updating import metadata: %w", err)
	}

	logging.LogOperation(logger, "import_metadata_updated",
		slog.String("hash", hashStr[:8]),
		slog.String("source", params.Source))

	return nil
}

func (c *Client) clearDerivedResults(ctx context.Context) error {
	if err := c.Queries.ClearTripDirections(ctx); err != nil {
		return fmt.Errorf("error clearing trip_directions: %w", err)
	}
	if err := c.Queries.ClearStationTiers(ctx); err != nil {
		return fmt.Errorf("error clearing station_tiers: %w", err)
	}
	if err := c.Queries.ClearInferenceStats(ctx); err != nil {
		return fmt.Errorf("error clearing inference_stats: %w", err)
	}
	return nil
}

func collectTripDirections(result *timetable.InferenceResult, profiles []*timetable.RouteProfile) []TripDirection {
	var directions []TripDirection
	for _, profile := range profiles {
		for _, tripID := range profile.TripIDs {
			outcome, ok := result.Outcomes[tripID]
			if !ok {
				outcome = timetable.OutcomeProvided
			}
			directions = append(directions, TripDirection{
				TripID:      tripID,
				RouteKey:    profile.RouteKey,
				DirectionID: int64(profile.DirectionID),
				Outcome:     string(outcome),
			})
		}
	}
	return directions
}

// bulkInsertTripDirections writes one row per trip using multi-row
// INSERT statements inside a single transaction.
func (c *Client) bulkInsertTripDirections(ctx context.Context, directions []TripDirection) error {
	logger := slog.Default().With(slog.String("component", "bulk_insert"))

	logging.LogOperation(logger, "inserting_trip_directions",
		slog.Int("count", len(directions)))

	batchSize := c.config.GetBulkInsertBatchSize()
	const baseQuery = `INSERT INTO trip_directions (
		trip_id, route_key, direction_id, outcome
	) VALUES `

	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "bulk_insert_trip_directions")

	for start := 0; start < len(directions); start += batchSize {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		end := start + batchSize
		if end > len(directions) {
			end = len(directions)
		}
		batch := directions[start:end]

		// Placeholders only; values never reach the query text.
		var query strings.Builder
		query.WriteString(baseQuery)
		args := make([]interface{}, 0, len(batch)*4)
		for j, d := range batch {
			if j > 0 {
				query.WriteString(", ")
			}
			query.WriteString("(?, ?, ?, ?)")
			args = append(args, d.TripID, d.RouteKey, d.DirectionID, d.Outcome)
		}

		if _, err := tx.ExecContext(ctx, query.String(), args...); err != nil {
			return fmt.Errorf("failed to insert trip_directions batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logging.LogOperation(logger, "trip_directions_inserted",
		slog.Int("count", len(directions)))

	return nil
}

// saveStationTiers writes the canonical row order of each profile, one
// row per station with its tier and boundary score.
func (c *Client) saveStationTiers(ctx context.Context, profiles []*timetable.RouteProfile) error {
	logger := slog.Default().With(slog.String("component", "bulk_insert"))

	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "save_station_tiers")

	qtx := c.Queries.WithTx(tx)
	total := 0
	for _, profile := range profiles {
		rowList := timetable.BuildRowList(profile)
		for position, row := range rowList.Rows {
			err := qtx.CreateStationTier(ctx, CreateStationTierParams{
				RouteKey:      profile.RouteKey,
				DirectionID:   int64(profile.DirectionID),
				StationID:     row.StationID,
				Name:          row.Name,
				Tier:          string(row.Tier),
				Position:      int64(position),
				BoundaryScore: profile.BoundaryScores[row.StationID],
			})
			if err != nil {
				return err
			}
			total++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logging.LogOperation(logger, "station_tiers_inserted",
		slog.Int("count", total))

	return nil
}

func (c *Client) saveInferenceStats(ctx context.Context, stats timetable.Stats) error {
	logger := slog.Default().With(slog.String("component", "bulk_insert"))

	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "save_inference_stats")

	qtx := c.Queries.WithTx(tx)
	counters := []struct {
		outcome timetable.Outcome
		count   int
	}{
		{timetable.OutcomeProvided, stats.Provided},
		{timetable.OutcomeExact, stats.Exact},
		{timetable.OutcomeSubsequence, stats.Subsequence},
		{timetable.OutcomeCircular, stats.Circular},
		{timetable.OutcomeBearing, stats.Bearing},
		{timetable.OutcomeFallback, stats.Fallback},
	}
	for _, counter := range counters {
		err := qtx.UpsertInferenceStat(ctx, UpsertInferenceStatParams{
			Outcome: string(counter.outcome),
			Count:   int64(counter.count),
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
