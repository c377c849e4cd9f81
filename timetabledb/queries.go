package timetabledb

// Hand-written SQL for the derived-results tables. If a table schema in
// schema.sql changes, the SQL and Go types in this file must be updated
// by hand to match.

import (
	"context"
)

type ImportMetadata struct {
	ID         int64
	FileHash   string
	FileSource string
	TripCount  int64
	RouteCount int64
	StopCount  int64
	ImportTime int64
}

type TripDirection struct {
	TripID      string
	RouteKey    string
	DirectionID int64
	Outcome     string
}

type StationTier struct {
	RouteKey      string
	DirectionID   int64
	StationID     string
	Name          string
	Tier          string
	Position      int64
	BoundaryScore float64
}

type InferenceStat struct {
	Outcome string
	Count   int64
}

const getImportMetadata = `
SELECT id, file_hash, file_source, trip_count, route_count, stop_count, import_time
FROM import_metadata
WHERE id = 1
`

func (q *Queries) GetImportMetadata(ctx context.Context) (ImportMetadata, error) {
	row := q.queryRow(ctx, q.getImportMetadataStmt, getImportMetadata)
	var i ImportMetadata
	err := row.Scan(
		&i.ID,
		&i.FileHash,
		&i.FileSource,
		&i.TripCount,
		&i.RouteCount,
		&i.StopCount,
		&i.ImportTime,
	)
	return i, err
}

const upsertImportMetadata = `
INSERT INTO import_metadata (id, file_hash, file_source, trip_count, route_count, stop_count, import_time)
VALUES (1, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    file_hash = excluded.file_hash,
    file_source = excluded.file_source,
    trip_count = excluded.trip_count,
    route_count = excluded.route_count,
    stop_count = excluded.stop_count,
    import_time = excluded.import_time
`

type UpsertImportMetadataParams struct {
	FileHash   string
	FileSource string
	TripCount  int64
	RouteCount int64
	StopCount  int64
	ImportTime int64
}

func (q *Queries) UpsertImportMetadata(ctx context.Context, arg UpsertImportMetadataParams) error {
	_, err := q.exec(ctx, nil, upsertImportMetadata,
		arg.FileHash,
		arg.FileSource,
		arg.TripCount,
		arg.RouteCount,
		arg.StopCount,
		arg.ImportTime,
	)
	return err
}

const getTripDirection = `
SELECT trip_id, route_key, direction_id, outcome
FROM trip_directions
WHERE trip_id = ?
`

func (q *Queries) GetTripDirection(ctx context.Context, tripID string) (TripDirection, error) {
	row := q.queryRow(ctx, q.getTripDirectionStmt, getTripDirection, tripID)
	var i TripDirection
	err := row.Scan(&i.TripID, &i.RouteKey, &i.DirectionID, &i.Outcome)
	return i, err
}

const listTripDirectionsForRoute = `
SELECT trip_id, route_key, direction_id, outcome
FROM trip_directions
WHERE route_key = ? AND direction_id = ?
ORDER BY trip_id
`

type ListTripDirectionsForRouteParams struct {
	RouteKey    string
	DirectionID int64
}

func (q *Queries) ListTripDirectionsForRoute(ctx context.Context, arg ListTripDirectionsForRouteParams) ([]TripDirection, error) {
	rows, err := q.query(ctx, nil, listTripDirectionsForRoute, arg.RouteKey, arg.DirectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []TripDirection
	for rows.Next() {
		var i TripDirection
		if err := rows.Scan(&i.TripID, &i.RouteKey, &i.DirectionID, &i.Outcome); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countTripDirections = `
SELECT COUNT(*) FROM trip_directions
`

func (q *Queries) CountTripDirections(ctx context.Context) (int64, error) {
	row := q.queryRow(ctx, nil, countTripDirections)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const clearTripDirections = `
DELETE FROM trip_directions
`

func (q *Queries) ClearTripDirections(ctx context.Context) error {
	_, err := q.exec(ctx, nil, clearTripDirections)
	return err
}

const createStationTier = `
INSERT INTO station_tiers (route_key, direction_id, station_id, name, tier, position, boundary_score)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (route_key, direction_id, station_id) DO UPDATE SET
    name = excluded.name,
    tier = excluded.tier,
    position = excluded.position,
    boundary_score = excluded.boundary_score
`

type CreateStationTierParams struct {
	RouteKey      string
	DirectionID   int64
	StationID     string
	Name          string
	Tier          string
	Position      int64
	BoundaryScore float64
}

func (q *Queries) CreateStationTier(ctx context.Context, arg CreateStationTierParams) error {
	_, err := q.exec(ctx, nil, createStationTier,
		arg.RouteKey,
		arg.DirectionID,
		arg.StationID,
		arg.Name,
		arg.Tier,
		arg.Position,
		arg.BoundaryScore,
	)
	return err
}

const listStationTiers = `
SELECT route_key, direction_id, station_id, name, tier, position, boundary_score
FROM station_tiers
WHERE route_key = ? AND direction_id = ?
ORDER BY position
`

type ListStationTiersParams struct {
	RouteKey    string
	DirectionID int64
}

func (q *Queries) ListStationTiers(ctx context.Context, arg ListStationTiersParams) ([]StationTier, error) {
	rows, err := q.query(ctx, nil, listStationTiers, arg.RouteKey, arg.DirectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []StationTier
	for rows.Next() {
		var i StationTier
		if err := rows.Scan(
			&i.RouteKey,
			&i.DirectionID,
			&i.StationID,
			&i.Name,
			&i.Tier,
			&i.Position,
			&i.BoundaryScore,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const clearStationTiers = `
DELETE FROM station_tiers
`

func (q *Queries) ClearStationTiers(ctx context.Context) error {
	_, err := q.exec(ctx, nil, clearStationTiers)
	return err
}

const upsertInferenceStat = `
INSERT INTO inference_stats (outcome, count)
VALUES (?, ?)
ON CONFLICT (outcome) DO UPDATE SET count = excluded.count
`

type UpsertInferenceStatParams struct {
	Outcome string
	Count   int64
}

func (q *Queries) UpsertInferenceStat(ctx context.Context, arg UpsertInferenceStatParams) error {
	_, err := q.exec(ctx, nil, upsertInferenceStat, arg.Outcome, arg.Count)
	return err
}

const listInferenceStats = `
SELECT outcome, count
FROM inference_stats
ORDER BY outcome
`

func (q *Queries) ListInferenceStats(ctx context.Context) ([]InferenceStat, error) {
	rows, err := q.query(ctx, nil, listInferenceStats)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below
	var items []InferenceStat
	for rows.Next() {
		var i InferenceStat
		if err := rows.Scan(&i.Outcome, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const clearInferenceStats = `
DELETE FROM inference_stats
`

func (q *Queries) ClearInferenceStats(ctx context.Context) error {
	_, err := q.exec(ctx, nil, clearInferenceStats)
	return err
}
