package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeTrips(ds *Dataset, routeID string) []*Trip {
	var trips []*Trip
	for _, trip := range ds.Trips {
		if trip.RouteID == routeID {
			trips = append(trips, trip)
		}
	}
	return trips
}

func TestBuildRouteProfileCoreAndBranch(t *testing.T) {
	// Nineteen trunk trips and one detour through X: the trunk edges
	// run at 95%, X's edges at 5%, so X stays non-core. X sits between
	// core stations B and D on its own trip, making it a passenger
	// branch.
	stops := lineStops("A", "B", "C", "D", "X")
	specs := repeatTrips("r1", "trunk", 19, "A", "B", "C", "D")
	specs = append(specs, tripSpec{id: "detour", route: "r1", stops: []string{"A", "B", "X", "D"}})
	ds := buildDataset(stops, specs...)

	profile := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))

	assert.Equal(t, []string{"A", "B", "C", "D"}, profile.CoreOrder)
	assert.Equal(t, TierCore, profile.Tiers["A"])
	assert.Equal(t, TierCore, profile.Tiers["D"])
	assert.Equal(t, TierPassenger, profile.Tiers["X"])
	assert.InDelta(t, 0.95, profile.EdgeFrequencies[Edge{From: "B", To: "C"}], 1e-9)
	assert.InDelta(t, 0.05, profile.EdgeFrequencies[Edge{From: "B", To: "X"}], 1e-9)
	assert.InDelta(t, 0.05, profile.BoundaryScores["X"], 1e-9)
	assert.Empty(t, profile.Diagnostics)
}

func TestBuildRouteProfileDepotTailFlags(t *testing.T) {
	// Y is reached once, with boarding barred, past the last core
	// station: a depot approach, not a passenger stop.
	stops := lineStops("A", "B", "D", "Y")
	specs := repeatTrips("r1", "trunk", 19, "A", "B", "D")
	specs = append(specs, tripSpec{
		id:     "pullin",
		route:  "r1",
		stops:  []string{"A", "B", "D", "Y"},
		pickup: map[string]int{"Y": 1},
	})
	ds := buildDataset(stops, specs...)

	profile := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))

	assert.Equal(t, TierTail, profile.Tiers["Y"])
	assert.Equal(t, []string{"A", "B", "D"}, profile.CoreOrder)
}

func TestBuildRouteProfileTailPropagation(t *testing.T) {
	// Z carries no service flags of its own but only ever appears on
	// the depot run next to flagged Y, so tail membership propagates
	// to it.
	stops := lineStops("A", "B", "D", "Z", "Y")
	specs := repeatTrips("r1", "trunk", 19, "A", "B", "D")
	specs = append(specs, tripSpec{
		id:     "deadhead",
		route:  "r1",
		stops:  []string{"Z", "Y"},
		pickup: map[string]int{"Y": 1},
	})
	ds := buildDataset(stops, specs...)

	profile := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))

	assert.Equal(t, TierTail, profile.Tiers["Y"])
	assert.Equal(t, TierTail, profile.Tiers["Z"])
}

func TestBuildRouteProfilePropagationReachesFixedPoint(t *testing.T) {
	stops := lineStops("A", "B", "D", "Z", "Y")
	specs := repeatTrips("r1", "trunk", 19, "A", "B", "D")
	specs = append(specs, tripSpec{
		id:     "deadhead",
		route:  "r1",
		stops:  []string{"Z", "Y"},
		pickup: map[string]int{"Y": 1},
	})
	ds := buildDataset(stops, specs...)

	first := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))
	second := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))

	// Rebuilding from scratch classifies exactly the same stations:
	// the propagation converged rather than depending on pass count.
	assert.Equal(t, first.Tiers, second.Tiers)
	assert.Equal(t, first.CoreOrder, second.CoreOrder)
}

func TestBuildRouteProfilePositionBeatsFlags(t *testing.T) {
	// M lies between core stations on one trip and carries a no-pickup
	// flag on another. The positional test wins and is final: M stays
	// a passenger branch.
	stops := lineStops("A", "B", "M", "C")
	specs := repeatTrips("r1", "trunk", 19, "A", "B", "C")
	specs = append(specs,
		tripSpec{id: "mid", route: "r1", stops: []string{"A", "M", "C"}},
		tripSpec{
			id:     "flagged",
			route:  "r1",
			stops:  []string{"A", "M", "C"},
			pickup: map[string]int{"M": 1},
		},
	)
	ds := buildDataset(stops, specs...)

	profile := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))
	assert.Equal(t, TierPassenger, profile.Tiers["M"])
}

func TestStationMergeGroupsPlatforms(t *testing.T) {
	// Two platforms of one station, each visited by different trips:
	// the parent station becomes the merged row for both.
	stops := lineStops("A", "B")
	stops["P1"] = &Stop{ID: "P1", Name: "Central P1", Lat: fixtureLat, Lon: -122.27, HasCoords: true, ParentStation: "CENTRAL"}
	stops["P2"] = &Stop{ID: "P2", Name: "Central P2", Lat: fixtureLat, Lon: -122.27, HasCoords: true, ParentStation: "CENTRAL"}
	stops["CENTRAL"] = &Stop{ID: "CENTRAL", Name: "Central", Lat: fixtureLat, Lon: -122.27, HasCoords: true}

	ds := buildDataset(stops,
		tripSpec{id: "t1", route: "r1", stops: []string{"A", "B", "P1"}},
		tripSpec{id: "t2", route: "r1", stops: []string{"A", "B", "P2"}},
	)

	profile := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))

	assert.Equal(t, "CENTRAL", profile.StationOf["P1"])
	assert.Equal(t, "CENTRAL", profile.StationOf["P2"])
	assert.Equal(t, "Central", profile.StationNames["CENTRAL"])
	assert.Contains(t, profile.CoreOrder, "CENTRAL")
}

func TestStationMergeLoopSafety(t *testing.T) {
	// A trip passes through the station group twice; merging would
	// fold the two visits into one row, so the group stays unmerged
	// everywhere.
	stops := lineStops("A", "B")
	stops["P1"] = &Stop{ID: "P1", Name: "Loop P1", Lat: fixtureLat, Lon: -122.27, HasCoords: true, ParentStation: "LOOP"}
	stops["P2"] = &Stop{ID: "P2", Name: "Loop P2", Lat: fixtureLat, Lon: -122.27, HasCoords: true, ParentStation: "LOOP"}

	ds := buildDataset(stops,
		tripSpec{id: "loop", route: "r1", stops: []string{"P1", "A", "B", "P2"}},
		tripSpec{id: "plain", route: "r1", stops: []string{"P1", "A", "B"}},
	)

	profile := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))

	assert.Equal(t, "P1", profile.StationOf["P1"])
	assert.Equal(t, "P2", profile.StationOf["P2"])
}

func TestBuildRouteProfileWithoutTrips(t *testing.T) {
	ds := buildDataset(lineStops("A"))

	profile := BuildRouteProfile(ds, "ghost", 0, nil)

	require.Len(t, profile.Diagnostics, 1)
	assert.Equal(t, DiagNoTrips, profile.Diagnostics[0].Kind)
	assert.Empty(t, profile.CoreOrder)
	assert.Empty(t, profile.Tiers)
}

func TestEdgeFrequencyCountsOncePerTrip(t *testing.T) {
	// The loop trip contains A->B twice; it still counts as one trip
	// containing the edge.
	stops := lineStops("A", "B", "C")
	ds := buildDataset(stops,
		tripSpec{id: "loop", route: "r1", stops: []string{"A", "B", "A", "B", "C"}},
		tripSpec{id: "plain", route: "r1", stops: []string{"A", "B", "C"}},
	)

	profile := BuildRouteProfile(ds, "r1", 0, routeTrips(ds, "r1"))
	assert.InDelta(t, 1.0, profile.EdgeFrequencies[Edge{From: "A", To: "B"}], 1e-9)
}
