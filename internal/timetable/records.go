// Package timetable derives schedule structure from a static feed: trip
// travel directions when the feed omits them, route topology (trunk,
// branch, and depot stations), a canonical date-independent row order of
// stations, and a deterministic column order of trips for one service
// date. All derivation is in-memory and side-effect free apart from the
// one-time direction labeling of trips.
package timetable

import "sort"

// StopTime is one scheduled stop of a trip. Times are minutes after
// midnight; values over 1440 are legal and mean service after midnight.
// Pickup and drop-off types carry the GTFS codes, where 1 means not
// available.
type StopTime struct {
	TripID           string
	StopID           string
	Sequence         int
	ArrivalMinutes   int
	DepartureMinutes int
	PickupType       int
	DropOffType      int
}

// Revenue reports whether passengers can board or alight at this stop.
func (st StopTime) Revenue() bool {
	return st.PickupType != 1 || st.DropOffType != 1
}

// Trip is one scheduled trip. DirectionID is meaningful only while
// DirectionSet is true; it is set either by the feed or by
// InferDirections, which mutates trips in place exactly once per load.
type Trip struct {
	ID           string
	RouteID      string
	ServiceID    string
	ShapeID      string
	Headsign     string
	DirectionID  int
	DirectionSet bool
}

// Stop is one boarding location. HasCoords is false when the feed omits
// either coordinate; such stops degrade every geometric path to its
// documented fallback. ParentStation is empty for top-level stops.
type Stop struct {
	ID            string
	Name          string
	Lat           float64
	Lon           float64
	HasCoords     bool
	ParentStation string
}

// Diagnostic kinds reported by dataset construction and derivation.
// Contract violations are never fatal; they surface here instead.
const (
	DiagDuplicateSequence = "duplicate_stop_sequence"
	DiagUnknownStop       = "unknown_stop_reference"
	DiagNoTrips           = "route_without_trips"
)

// Diagnostic is a non-fatal data quality finding tied to a route and,
// when applicable, a trip.
type Diagnostic struct {
	Kind    string `json:"kind"`
	RouteID string `json:"routeId,omitempty"`
	TripID  string `json:"tripId,omitempty"`
	Message string `json:"message"`
}

// Dataset is the normalized view of one loaded feed. It is built once
// per load and treated as immutable afterwards except for direction
// labeling; a feed reload constructs a new Dataset, which is also what
// invalidates the per-trip stop sequence memo.
type Dataset struct {
	Trips           []*Trip
	StopTimesByTrip map[string][]StopTime
	StopsByID       map[string]*Stop

	sequences   map[string][]string
	diagnostics []Diagnostic
}

// NewDataset builds a Dataset from normalized records. Stop times are
// sorted by sequence number per trip (stable, so duplicate sequence
// numbers keep their input order) and the per-trip stop sequences are
// computed up front. Duplicate sequence numbers and stop references
// that resolve to no stop are reported as diagnostics.
func NewDataset(trips []*Trip, stopTimesByTrip map[string][]StopTime, stopsByID map[string]*Stop) *Dataset {
	ds := &Dataset{
		Trips:           trips,
		StopTimesByTrip: stopTimesByTrip,
		StopsByID:       stopsByID,
		sequences:       make(map[string][]string, len(trips)),
	}

	routeByTrip := make(map[string]string, len(trips))
	for _, trip := range trips {
		routeByTrip[trip.ID] = trip.RouteID
	}

	for _, trip := range trips {
		times := stopTimesByTrip[trip.ID]
		sort.SliceStable(times, func(i, j int) bool {
			return times[i].Sequence < times[j].Sequence
		})

		seq := make([]string, 0, len(times))
		duplicates := false
		unknown := false
		for i, st := range times {
			if i > 0 && st.Sequence == times[i-1].Sequence {
				duplicates = true
			}
			if _, ok := stopsByID[st.StopID]; !ok {
				unknown = true
			}
			seq = append(seq, st.StopID)
		}
		ds.sequences[trip.ID] = seq

		if duplicates {
			ds.diagnostics = append(ds.diagnostics, Diagnostic{
				Kind:    DiagDuplicateSequence,
				RouteID: routeByTrip[trip.ID],
				TripID:  trip.ID,
				Message: "stop times share a sequence number; input order kept",
			})
		}
		if unknown {
			ds.diagnostics = append(ds.diagnostics, Diagnostic{
				Kind:    DiagUnknownStop,
				RouteID: routeByTrip[trip.ID],
				TripID:  trip.ID,
				Message: "stop time references a stop missing from the feed",
			})
		}
	}

	return ds
}

// Diagnostics returns the findings collected while building the dataset.
func (ds *Dataset) Diagnostics() []Diagnostic {
	return ds.diagnostics
}

// Stop returns the stop for an ID, or nil when the feed does not define
// it.
func (ds *Dataset) Stop(stopID string) *Stop {
	return ds.StopsByID[stopID]
}
