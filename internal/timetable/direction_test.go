package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripByID(ds *Dataset, id string) *Trip {
	for _, trip := range ds.Trips {
		if trip.ID == id {
			return trip
		}
	}
	return nil
}

func TestInferDirectionsExactMatches(t *testing.T) {
	stops := lineStops("A", "B", "C", "D")
	specs := repeatTrips("r1", "fwd", 3, "A", "B", "C", "D")
	specs = append(specs, repeatTrips("r1", "rev", 2, "D", "C", "B", "A")...)
	ds := buildDataset(stops, specs...)

	result := InferDirections(ds, InferOptions{Workers: 1})

	assert.Equal(t, Stats{Exact: 5}, result.Stats)
	for _, id := range []string{"fwd-1", "fwd-2", "fwd-3"} {
		trip := tripByID(ds, id)
		require.True(t, trip.DirectionSet)
		assert.Equal(t, 0, trip.DirectionID, "trip %s", id)
		assert.Equal(t, OutcomeExact, result.Outcomes[id])
	}
	for _, id := range []string{"rev-1", "rev-2"} {
		assert.Equal(t, 1, tripByID(ds, id).DirectionID, "trip %s", id)
		assert.Equal(t, OutcomeExact, result.Outcomes[id])
	}
}

func TestInferDirectionsSubsequenceMatch(t *testing.T) {
	stops := lineStops("A", "B", "C", "D", "E")
	specs := repeatTrips("r1", "fwd", 3, "A", "B", "C", "D")
	specs = append(specs,
		tripSpec{id: "short-fwd", route: "r1", stops: []string{"A", "B", "D"}},
		tripSpec{id: "short-rev", route: "r1", stops: []string{"D", "B", "A"}},
	)
	ds := buildDataset(stops, specs...)

	result := InferDirections(ds, InferOptions{})

	assert.Equal(t, 0, tripByID(ds, "short-fwd").DirectionID)
	assert.Equal(t, 1, tripByID(ds, "short-rev").DirectionID)
	assert.Equal(t, OutcomeSubsequence, result.Outcomes["short-fwd"])
	assert.Equal(t, OutcomeSubsequence, result.Outcomes["short-rev"])
	assert.Equal(t, 3, result.Stats.Exact)
	assert.Equal(t, 2, result.Stats.Subsequence)
}

func TestInferDirectionsCircularRouteSplitsByBearing(t *testing.T) {
	// Both trips loop over the same two stops; the first hop decides
	// the direction. A-first trips head east (bearing 90), B-first
	// trips head west (bearing 270).
	stops := lineStops("A", "B")
	ds := buildDataset(stops,
		tripSpec{id: "cw", route: "loop", stops: []string{"A", "B", "A"}},
		tripSpec{id: "ccw", route: "loop", stops: []string{"B", "A", "B"}},
	)

	result := InferDirections(ds, InferOptions{})

	assert.Equal(t, Stats{Circular: 2}, result.Stats)
	assert.Equal(t, 0, tripByID(ds, "cw").DirectionID)
	assert.Equal(t, 1, tripByID(ds, "ccw").DirectionID)
	assert.Equal(t, OutcomeCircular, result.Outcomes["cw"])
	assert.Equal(t, OutcomeCircular, result.Outcomes["ccw"])
}

func TestInferDirectionsMissingStopTimesFallsBack(t *testing.T) {
	stops := lineStops("A", "B")
	trips := []*Trip{
		{ID: "empty", RouteID: "r1"},
		{ID: "ok", RouteID: "r1"},
	}
	stopTimes := map[string][]StopTime{
		"ok": {
			{TripID: "ok", StopID: "A", Sequence: 1},
			{TripID: "ok", StopID: "B", Sequence: 2},
		},
	}
	ds := NewDataset(trips, stopTimes, stops)

	result := InferDirections(ds, InferOptions{})

	empty := tripByID(ds, "empty")
	require.True(t, empty.DirectionSet)
	assert.Equal(t, 0, empty.DirectionID)
	assert.Equal(t, OutcomeFallback, result.Outcomes["empty"])
	assert.Equal(t, 1, result.Stats.Fallback)
}

func TestInferDirectionsBearingTieBreak(t *testing.T) {
	// "X" appears in neither reference, so both score 0.5 for a
	// two-stop candidate containing it; the end-to-end bearing decides.
	stops := lineStops("A", "B", "C")
	stops["X"] = &Stop{ID: "X", Lat: fixtureLat, Lon: -122.31, HasCoords: true}

	specs := repeatTrips("r1", "fwd", 2, "A", "B", "C")
	specs = append(specs,
		tripSpec{id: "east", route: "r1", stops: []string{"X", "B"}},
		tripSpec{id: "west", route: "r1", stops: []string{"B", "X"}},
	)
	ds := buildDataset(stops, specs...)

	result := InferDirections(ds, InferOptions{})

	assert.Equal(t, 0, tripByID(ds, "east").DirectionID)
	assert.Equal(t, 1, tripByID(ds, "west").DirectionID)
	assert.Equal(t, OutcomeBearing, result.Outcomes["east"])
	assert.Equal(t, OutcomeBearing, result.Outcomes["west"])
}

func TestInferDirectionsTieWithoutCoordinatesFallsBack(t *testing.T) {
	stops := lineStops("A", "B", "C")
	stops["X"] = &Stop{ID: "X", Name: "No coords"}

	specs := repeatTrips("r1", "fwd", 2, "A", "B", "C")
	specs = append(specs, tripSpec{id: "blind", route: "r1", stops: []string{"X", "B"}})
	ds := buildDataset(stops, specs...)

	result := InferDirections(ds, InferOptions{})

	assert.Equal(t, 0, tripByID(ds, "blind").DirectionID)
	assert.Equal(t, OutcomeFallback, result.Outcomes["blind"])
}

func TestInferDirectionsRespectsProvidedLabels(t *testing.T) {
	stops := lineStops("A", "B", "C")
	ds := buildDataset(stops,
		tripSpec{id: "labeled", route: "r1", stops: []string{"A", "B", "C"}},
		tripSpec{id: "unlabeled", route: "r1", stops: []string{"A", "B", "C"}},
	)
	labeled := tripByID(ds, "labeled")
	labeled.DirectionID = 1
	labeled.DirectionSet = true

	result := InferDirections(ds, InferOptions{})

	// The feed's label survives even though the pattern says forward.
	assert.Equal(t, 1, labeled.DirectionID)
	assert.Equal(t, OutcomeProvided, result.Outcomes["labeled"])
	assert.Equal(t, 0, tripByID(ds, "unlabeled").DirectionID)
	assert.Equal(t, 1, result.Stats.Provided)
	assert.Equal(t, 1, result.Stats.Exact)
}

func TestInferDirectionsIdempotentUnlessForced(t *testing.T) {
	stops := lineStops("A", "B", "C")
	specs := repeatTrips("r1", "fwd", 2, "A", "B", "C")
	specs = append(specs, tripSpec{id: "rev", route: "r1", stops: []string{"C", "B", "A"}})
	ds := buildDataset(stops, specs...)

	first := InferDirections(ds, InferOptions{})
	assert.Equal(t, 1, tripByID(ds, "rev").DirectionID)

	second := InferDirections(ds, InferOptions{})
	assert.Equal(t, Stats{Provided: first.Stats.Total()}, second.Stats)
	assert.Equal(t, 1, tripByID(ds, "rev").DirectionID)

	forced := InferDirections(ds, InferOptions{Force: true})
	assert.Equal(t, first.Stats, forced.Stats)
	assert.Equal(t, 1, tripByID(ds, "rev").DirectionID)
}

func TestInferDirectionsDeterministicAcrossRuns(t *testing.T) {
	stops := lineStops("A", "B", "C", "D", "E", "F")
	specs := repeatTrips("r1", "fwd", 4, "A", "B", "C", "D", "E", "F")
	specs = append(specs, repeatTrips("r1", "rev", 4, "F", "E", "D", "C", "B", "A")...)
	specs = append(specs,
		tripSpec{id: "branch-1", route: "r1", stops: []string{"A", "B", "D", "F"}},
		tripSpec{id: "branch-2", route: "r1", stops: []string{"F", "D", "B", "A"}},
	)
	specs = append(specs, repeatTrips("r2", "other", 3, "C", "D", "E")...)

	baseline := map[string]int{}
	ds := buildDataset(stops, specs...)
	InferDirections(ds, InferOptions{Workers: 1})
	for _, trip := range ds.Trips {
		baseline[trip.ID] = trip.DirectionID
	}

	for workers := 1; workers <= 4; workers++ {
		ds := buildDataset(stops, specs...)
		result := InferDirections(ds, InferOptions{Workers: workers})
		assert.Equal(t, len(specs), result.Stats.Total())
		for _, trip := range ds.Trips {
			assert.Equal(t, baseline[trip.ID], trip.DirectionID,
				"trip %s with %d workers", trip.ID, workers)
		}
	}
}
