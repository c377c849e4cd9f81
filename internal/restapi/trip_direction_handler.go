package restapi

import (
	"database/sql"
	"errors"
	"net/http"

	"gridline.opentransit.org/internal/models"
	"gridline.opentransit.org/internal/utils"
)

// tripDirectionHandler serves the persisted direction label of one
// trip, including which inference method produced it.
func (api *RestAPI) tripDirectionHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)

	if err := utils.ValidateID(id); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	row, err := api.GtfsManager.Store.Queries.GetTripDirection(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := models.TripDirectionEntry{
		TripID:      row.TripID,
		RouteID:     row.RouteKey,
		DirectionID: int(row.DirectionID),
		Outcome:     row.Outcome,
	}

	response := models.NewEntryResponse(entry, models.NewEmptyReferences(), api.Clock)
	api.sendResponse(w, r, response)
}
