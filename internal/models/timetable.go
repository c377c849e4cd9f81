package models

// TimetableRow is one station row of a rendered timetable.
type TimetableRow struct {
	StationID string `json:"stationId"`
	Name      string `json:"name"`
	Tier      string `json:"tier"`
	Visible   bool   `json:"visible"`
}

// TimetableColumn is one ordered trip column of a rendered timetable.
// Times map station IDs to minutes after midnight.
type TimetableColumn struct {
	TripID   string         `json:"tripId"`
	Headsign string         `json:"headsign"`
	Times    map[string]int `json:"times"`
}

// TimetableEntry is the payload of the timetable endpoint.
type TimetableEntry struct {
	RouteID     string            `json:"routeId"`
	DirectionID int               `json:"directionId"`
	ServiceDate string            `json:"serviceDate"`
	Rows        []TimetableRow    `json:"rows"`
	Columns     []TimetableColumn `json:"columns"`
}

// StationTierEntry is one station of a route profile with its tier
// classification.
type StationTierEntry struct {
	StationID     string  `json:"stationId"`
	Name          string  `json:"name"`
	Tier          string  `json:"tier"`
	Position      int     `json:"position"`
	BoundaryScore float64 `json:"boundaryScore"`
}

// EdgeFrequencyEntry is one adjacency edge with the share of trips
// containing it.
type EdgeFrequencyEntry struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Frequency float64 `json:"frequency"`
}

// RouteProfileEntry is the payload of the route-profile endpoint.
type RouteProfileEntry struct {
	RouteID     string               `json:"routeId"`
	DirectionID int                  `json:"directionId"`
	TotalTrips  int                  `json:"totalTrips"`
	CoreOrder   []string             `json:"coreOrder"`
	Stations    []StationTierEntry   `json:"stations"`
	Edges       []EdgeFrequencyEntry `json:"edges"`
	Diagnostics []string             `json:"diagnostics"`
}

// DiagnosticEntry is one dataset or inference finding.
type DiagnosticEntry struct {
	Kind    string `json:"kind"`
	RouteID string `json:"routeId,omitempty"`
	TripID  string `json:"tripId,omitempty"`
	Message string `json:"message"`
}

// DirectionStatisticsEntry is the payload of the direction-statistics
// endpoint, counting trips by the method that decided their direction.
type DirectionStatisticsEntry struct {
	Provided    int               `json:"provided"`
	Exact       int               `json:"exact"`
	Subsequence int               `json:"subsequence"`
	Circular    int               `json:"circular"`
	Bearing     int               `json:"bearing"`
	Fallback    int               `json:"fallback"`
	Total       int               `json:"total"`
	Diagnostics []DiagnosticEntry `json:"diagnostics"`
}

// TripDirectionEntry is the payload of the trip-direction endpoint.
type TripDirectionEntry struct {
	TripID      string `json:"tripId"`
	RouteID     string `json:"routeId"`
	DirectionID int    `json:"directionId"`
	Outcome     string `json:"outcome"`
}
