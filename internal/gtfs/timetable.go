package gtfs

import (
	"gridline.opentransit.org/internal/timetable"
)

// TimetableRow is one display row: a station with its tier and whether
// it is visible for the requested date.
type TimetableRow struct {
	StationID string
	Name      string
	Tier      timetable.Tier
	Visible   bool
}

// TimetableColumn is one ordered trip with its times, in minutes after
// midnight, at the visible rows it serves.
type TimetableColumn struct {
	TripID   string
	Headsign string
	Times    map[string]int
}

// Timetable is the rendered schedule of one route, direction, and
// service date.
type Timetable struct {
	RouteKey    string
	DirectionID int
	ServiceDate string
	Rows        []TimetableRow
	Columns     []TimetableColumn
}

// ProfileFor returns the derived topology of a route and direction,
// building and caching it on first use. Unknown keys yield a profile
// holding only a diagnostic.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) ProfileFor(routeKey string, directionID int) *timetable.RouteProfile {
	key := tripGroupKey{routeKey: routeKey, directionID: directionID}
	cacheKey := timetable.ProfileKey{RouteKey: routeKey, DirectionID: directionID}
	return manager.cache.Profile(cacheKey, func() *timetable.RouteProfile {
		return timetable.BuildRouteProfile(manager.dataset, routeKey, directionID, manager.tripsByKey[key])
	})
}

// RowListFor returns the canonical date-independent row order of a
// route and direction.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) RowListFor(routeKey string, directionID int) *timetable.RowList {
	cacheKey := timetable.ProfileKey{RouteKey: routeKey, DirectionID: directionID}
	return manager.cache.RowList(cacheKey, func() *timetable.RowList {
		return timetable.BuildRowList(manager.ProfileFor(routeKey, directionID))
	})
}

// TimetableFor renders the schedule of one route key, direction, and
// YYYYMMDD service date. Row order never depends on the date; the date
// only filters trips and row visibility. Without showAll, depot trips
// and tail rows are hidden. Returns nil for unknown route keys.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) TimetableFor(routeKey string, directionID int, date string, showAll bool) *Timetable {
	if _, ok := manager.routesByKey[routeKey]; !ok {
		return nil
	}

	profile := manager.ProfileFor(routeKey, directionID)
	rowList := manager.RowListFor(routeKey, directionID)
	active := manager.ActiveTripIDsOn(date)

	columns := manager.buildColumns(profile, active)

	served := make(map[string]bool)
	for _, col := range columns {
		for station := range col.Times {
			served[station] = true
		}
	}

	rows := make([]TimetableRow, 0, len(rowList.Rows))
	var visibleRowIDs, coreRowIDs []string
	for _, row := range rowList.Rows {
		visible := served[row.StationID] && (showAll || row.Tier != timetable.TierTail)
		rows = append(rows, TimetableRow{
			StationID: row.StationID,
			Name:      row.Name,
			Tier:      row.Tier,
			Visible:   visible,
		})
		if visible {
			visibleRowIDs = append(visibleRowIDs, row.StationID)
		}
		if row.Tier == timetable.TierCore {
			coreRowIDs = append(coreRowIDs, row.StationID)
		}
	}

	columnKey := timetable.ColumnKey{
		RouteKey:     routeKey,
		DirectionID:  directionID,
		ServiceDate:  date,
		ShowAllTrips: showAll,
	}
	ordered := manager.cache.Columns(columnKey, func() []string {
		ids := timetable.OrderColumns(columns, visibleRowIDs, coreRowIDs, manager.config.OrderParams())
		if showAll {
			return ids
		}
		byID := columnsByID(columns)
		service := make([]string, 0, len(ids))
		for _, id := range ids {
			if servesCoreRow(byID[id], coreRowIDs) {
				service = append(service, id)
			}
		}
		return service
	})

	byID := columnsByID(columns)
	out := make([]TimetableColumn, 0, len(ordered))
	visibleSet := make(map[string]bool, len(visibleRowIDs))
	for _, id := range visibleRowIDs {
		visibleSet[id] = true
	}
	for _, id := range ordered {
		col, ok := byID[id]
		if !ok {
			continue
		}
		times := make(map[string]int)
		for station, rt := range col.Times {
			if visibleSet[station] {
				times[station] = rt.Minutes
			}
		}
		out = append(out, TimetableColumn{
			TripID:   col.TripID,
			Headsign: col.Headsign,
			Times:    times,
		})
	}

	return &Timetable{
		RouteKey:    routeKey,
		DirectionID: directionID,
		ServiceDate: date,
		Rows:        rows,
		Columns:     out,
	}
}

// buildColumns assembles the per-trip station times for the active
// trips of a profile. Loop trips keep the time of their first visit to
// a station.
func (manager *Manager) buildColumns(profile *timetable.RouteProfile, active map[string]bool) []timetable.Column {
	key := tripGroupKey{routeKey: profile.RouteKey, directionID: profile.DirectionID}

	var columns []timetable.Column
	for _, trip := range manager.tripsByKey[key] {
		if !active[trip.ID] {
			continue
		}

		col := timetable.Column{
			TripID:   trip.ID,
			Headsign: trip.Headsign,
			Times:    make(map[string]timetable.RowTime),
		}
		for _, st := range manager.dataset.StopTimesByTrip[trip.ID] {
			station := profile.StationOf[st.StopID]
			if station == "" {
				station = st.StopID
			}
			if _, ok := col.Times[station]; !ok {
				col.Times[station] = timetable.RowTime{
					Minutes: st.DepartureMinutes,
					Revenue: st.Revenue(),
				}
			}
		}
		columns = append(columns, col)
	}
	return columns
}

func columnsByID(columns []timetable.Column) map[string]timetable.Column {
	byID := make(map[string]timetable.Column, len(columns))
	for _, col := range columns {
		byID[col.TripID] = col
	}
	return byID
}

func servesCoreRow(col timetable.Column, coreRows []string) bool {
	for _, row := range coreRows {
		if t, ok := col.Times[row]; ok && t.Revenue {
			return true
		}
	}
	return false
}
