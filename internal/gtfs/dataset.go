package gtfs

import (
	"fmt"
	"time"

	"github.com/OneBusAway/go-gtfs"
	"gridline.opentransit.org/internal/timetable"
)

// routeKeyFor computes the grouping key of a route. Grouping by short
// name folds parallel feed routes (one per direction or branch) into a
// single timetable.
func routeKeyFor(route *gtfs.Route, groupByShortName bool) string {
	if !groupByShortName || route.ShortName == "" {
		return route.Id
	}
	return fmt.Sprintf("%s_%s", route.Agency.Id, route.ShortName)
}

// buildTimetableDataset converts parsed GTFS records to the normalized
// model the derivation core consumes. Trip RouteID carries the route
// key, not the raw feed route ID. Feed-provided direction labels are
// kept; everything else is left for inference.
func buildTimetableDataset(staticData *gtfs.Static, groupByShortName bool) (*timetable.Dataset, map[string]string) {
	routeKeys := make(map[string]string, len(staticData.Routes))
	for i := range staticData.Routes {
		route := &staticData.Routes[i]
		routeKeys[route.Id] = routeKeyFor(route, groupByShortName)
	}

	stops := make(map[string]*timetable.Stop, len(staticData.Stops))
	for i := range staticData.Stops {
		s := &staticData.Stops[i]
		stop := &timetable.Stop{
			ID:   s.Id,
			Name: s.Name,
		}
		if s.Latitude != nil && s.Longitude != nil {
			stop.Lat = *s.Latitude
			stop.Lon = *s.Longitude
			stop.HasCoords = true
		}
		if s.Parent != nil {
			stop.ParentStation = s.Parent.Id
		}
		stops[s.Id] = stop
	}

	trips := make([]*timetable.Trip, 0, len(staticData.Trips))
	stopTimes := make(map[string][]timetable.StopTime, len(staticData.Trips))
	for i := range staticData.Trips {
		t := &staticData.Trips[i]

		trip := &timetable.Trip{
			ID:       t.ID,
			RouteID:  routeKeys[t.Route.Id],
			Headsign: t.Headsign,
		}
		if t.Service != nil {
			trip.ServiceID = t.Service.Id
		}
		if t.Shape != nil {
			trip.ShapeID = t.Shape.ID
		}
		switch t.DirectionId {
		case gtfs.DirectionID_False:
			trip.DirectionID = 0
			trip.DirectionSet = true
		case gtfs.DirectionID_True:
			trip.DirectionID = 1
			trip.DirectionSet = true
		}

		times := make([]timetable.StopTime, 0, len(t.StopTimes))
		for _, st := range t.StopTimes {
			times = append(times, timetable.StopTime{
				TripID:           t.ID,
				StopID:           st.Stop.Id,
				Sequence:         st.StopSequence,
				ArrivalMinutes:   int(time.Duration(st.ArrivalTime) / time.Minute),
				DepartureMinutes: int(time.Duration(st.DepartureTime) / time.Minute),
				PickupType:       int(st.PickupType),
				DropOffType:      int(st.DropOffType),
			})
		}

		trips = append(trips, trip)
		stopTimes[t.ID] = times
	}

	return timetable.NewDataset(trips, stopTimes, stops), routeKeys
}
