package timetabledb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gridline.opentransit.org/internal/appconf"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClientCreatesSchema(t *testing.T) {
	client := newTestClient(t)

	counts, err := client.TableCounts()
	require.NoError(t, err)

	for _, table := range []string{"import_metadata", "trip_directions", "station_tiers", "inference_stats"} {
		count, ok := counts[table]
		assert.True(t, ok, "table %s missing", table)
		assert.Zero(t, count)
	}
}

func TestNewClientRejectsFileDBInTestEnv(t *testing.T) {
	_, err := NewClient(NewConfig("/tmp/forbidden.db", appconf.Test, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in-memory")
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestImportMetadataRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Queries.GetImportMetadata(ctx)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = client.Queries.UpsertImportMetadata(ctx, UpsertImportMetadataParams{
		FileHash:   "abc123",
		FileSource: "testdata/feed.zip",
		TripCount:  10,
		RouteCount: 2,
		StopCount:  40,
		ImportTime: 1700000000,
	})
	require.NoError(t, err)

	meta, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", meta.FileHash)
	assert.Equal(t, int64(10), meta.TripCount)

	// A second upsert replaces the single row instead of adding one.
	err = client.Queries.UpsertImportMetadata(ctx, UpsertImportMetadataParams{
		FileHash:   "def456",
		FileSource: "testdata/feed.zip",
		ImportTime: 1700000001,
	})
	require.NoError(t, err)

	meta, err = client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "def456", meta.FileHash)

	counts, err := client.TableCounts()
	require.NoError(t, err)
	assert.Equal(t, 1, counts["import_metadata"])
}

func TestTripDirectionQueries(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	directions := []TripDirection{
		{TripID: "t1", RouteKey: "r1", DirectionID: 0, Outcome: "exact"},
		{TripID: "t2", RouteKey: "r1", DirectionID: 1, Outcome: "subsequence"},
		{TripID: "t3", RouteKey: "r2", DirectionID: 0, Outcome: "fallback"},
	}
	require.NoError(t, client.bulkInsertTripDirections(ctx, directions))

	got, err := client.Queries.GetTripDirection(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.DirectionID)
	assert.Equal(t, "subsequence", got.Outcome)

	_, err = client.Queries.GetTripDirection(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	list, err := client.Queries.ListTripDirectionsForRoute(ctx, ListTripDirectionsForRouteParams{
		RouteKey:    "r1",
		DirectionID: 0,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "t1", list[0].TripID)

	count, err := client.Queries.CountTripDirections(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestBulkInsertTripDirectionsBatches(t *testing.T) {
	config := NewConfig(":memory:", appconf.Test, false)
	config.BulkInsertBatchSize = 2
	client, err := NewClient(config)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	var directions []TripDirection
	for i := 0; i < 5; i++ {
		directions = append(directions, TripDirection{
			TripID:   string(rune('a' + i)),
			RouteKey: "r1",
			Outcome:  "exact",
		})
	}
	require.NoError(t, client.bulkInsertTripDirections(ctx, directions))

	count, err := client.Queries.CountTripDirections(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestInferenceStatQueries(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Queries.UpsertInferenceStat(ctx, UpsertInferenceStatParams{Outcome: "exact", Count: 7}))
	require.NoError(t, client.Queries.UpsertInferenceStat(ctx, UpsertInferenceStatParams{Outcome: "exact", Count: 9}))
	require.NoError(t, client.Queries.UpsertInferenceStat(ctx, UpsertInferenceStatParams{Outcome: "circular", Count: 1}))

	stats, err := client.Queries.ListInferenceStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "circular", stats[0].Outcome)
	assert.Equal(t, int64(9), stats[1].Count)
}
