package restapi

import (
	"net/http"

	"gridline.opentransit.org/internal/clock"
	"gridline.opentransit.org/internal/models"
	"gridline.opentransit.org/internal/utils"
)

// parseTimetableParams reads the route ID path value plus the
// direction, date, and showAll query parameters shared by the
// timetable and profile endpoints.
func (api *RestAPI) parseTimetableParams(w http.ResponseWriter, r *http.Request) (id string, directionID int, date string, showAll bool, ok bool) {
	id = utils.ExtractIDFromParams(r)
	fieldErrors := make(map[string][]string)

	if err := utils.ValidateID(id); err != nil {
		fieldErrors["id"] = append(fieldErrors["id"], err.Error())
	}

	directionID, hasDirection := utils.ParseIntParam(r, "direction", fieldErrors)
	if hasDirection && directionID != 0 && directionID != 1 {
		fieldErrors["direction"] = append(fieldErrors["direction"], "direction must be 0 or 1")
	}

	date = r.URL.Query().Get("date")
	if date == "" {
		date = clock.ServiceDate(api.Clock)
	}
	parsed, err := utils.ValidateDate(date)
	if err != nil {
		fieldErrors["date"] = append(fieldErrors["date"], err.Error())
	} else {
		date = parsed.Format("20060102")
	}

	showAll = r.URL.Query().Get("showAll") == "true"

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return "", 0, "", false, false
	}
	return id, directionID, date, showAll, true
}

func (api *RestAPI) timetableHandler(w http.ResponseWriter, r *http.Request) {
	id, directionID, date, showAll, ok := api.parseTimetableParams(w, r)
	if !ok {
		return
	}

	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	routeKey, found := api.GtfsManager.RouteKeyFor(id)
	if !found {
		api.sendNotFound(w, r)
		return
	}

	timetable := api.GtfsManager.TimetableFor(routeKey, directionID, date, showAll)
	if timetable == nil {
		api.sendNotFound(w, r)
		return
	}

	rows := make([]models.TimetableRow, 0, len(timetable.Rows))
	for _, row := range timetable.Rows {
		rows = append(rows, models.TimetableRow{
			StationID: row.StationID,
			Name:      row.Name,
			Tier:      string(row.Tier),
			Visible:   row.Visible,
		})
	}

	columns := make([]models.TimetableColumn, 0, len(timetable.Columns))
	for _, col := range timetable.Columns {
		columns = append(columns, models.TimetableColumn{
			TripID:   col.TripID,
			Headsign: col.Headsign,
			Times:    col.Times,
		})
	}

	entry := models.TimetableEntry{
		RouteID:     timetable.RouteKey,
		DirectionID: timetable.DirectionID,
		ServiceDate: timetable.ServiceDate,
		Rows:        rows,
		Columns:     columns,
	}

	response := models.NewEntryResponse(entry, api.routeReferences(routeKey), api.Clock)
	api.sendResponse(w, r, response)
}

// routeReferences builds the reference block for a route key: the
// grouped feed routes and their agencies.
// IMPORTANT: Caller must hold api.GtfsManager.RLock() before calling this method.
func (api *RestAPI) routeReferences(routeKey string) models.ReferencesModel {
	references := models.NewEmptyReferences()
	seenAgencies := make(map[string]bool)
	for _, route := range api.GtfsManager.RoutesForKey(routeKey) {
		references.Routes = append(references.Routes, routeModelFor(route))
		if !seenAgencies[route.Agency.Id] {
			seenAgencies[route.Agency.Id] = true
			references.Agencies = append(references.Agencies, agencyReferenceFor(route.Agency))
		}
	}
	return references
}
