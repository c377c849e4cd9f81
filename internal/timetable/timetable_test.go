package timetable

import "fmt"

// Test fixtures: stops are laid out on a west-to-east line so trips in
// stop order head roughly due east (bearing 90) and reversed trips head
// west (bearing 270). Stop IDs index into the line by their first rune.

const fixtureLat = 47.60

func lineStops(ids ...string) map[string]*Stop {
	stops := make(map[string]*Stop, len(ids))
	for i, id := range ids {
		stops[id] = &Stop{
			ID:        id,
			Name:      "Stop " + id,
			Lat:       fixtureLat,
			Lon:       -122.30 + float64(i)*0.01,
			HasCoords: true,
		}
	}
	return stops
}

type tripSpec struct {
	id     string
	route  string
	stops  []string
	pickup map[string]int
	drop   map[string]int
}

func buildDataset(stops map[string]*Stop, specs ...tripSpec) *Dataset {
	trips := make([]*Trip, 0, len(specs))
	stopTimes := make(map[string][]StopTime, len(specs))
	for _, spec := range specs {
		trips = append(trips, &Trip{ID: spec.id, RouteID: spec.route})
		times := make([]StopTime, 0, len(spec.stops))
		for i, stopID := range spec.stops {
			minutes := 8*60 + i*5
			times = append(times, StopTime{
				TripID:           spec.id,
				StopID:           stopID,
				Sequence:         i + 1,
				ArrivalMinutes:   minutes,
				DepartureMinutes: minutes,
				PickupType:       spec.pickup[stopID],
				DropOffType:      spec.drop[stopID],
			})
		}
		stopTimes[spec.id] = times
	}
	return NewDataset(trips, stopTimes, stops)
}

// repeatTrips clones one stop pattern into n trips with distinct IDs.
func repeatTrips(route, prefix string, n int, stops ...string) []tripSpec {
	specs := make([]tripSpec, 0, n)
	for i := 0; i < n; i++ {
		specs = append(specs, tripSpec{
			id:    fmt.Sprintf("%s-%d", prefix, i+1),
			route: route,
			stops: stops,
		})
	}
	return specs
}
