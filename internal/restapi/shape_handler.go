package restapi

import (
	"net/http"

	"gridline.opentransit.org/internal/models"
	"gridline.opentransit.org/internal/utils"
)

// ShapeEntry is the shape endpoint payload: an encoded polyline plus
// its post-simplification point count.
type ShapeEntry struct {
	ShapeID string `json:"shapeId"`
	Points  string `json:"points"`
	Length  int    `json:"length"`
}

func (api *RestAPI) shapeHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)

	if err := utils.ValidateID(id); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	fieldErrors := make(map[string][]string)
	tolerance, _ := utils.ParseFloatParam(r, "tolerance", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	shape := api.GtfsManager.ShapeFor(id, tolerance)
	if shape == nil {
		api.sendNotFound(w, r)
		return
	}

	entry := ShapeEntry{
		ShapeID: shape.ID,
		Points:  shape.Encoded,
		Length:  shape.Length,
	}
	response := models.NewEntryResponse(entry, models.NewEmptyReferences(), api.Clock)
	api.sendResponse(w, r, response)
}
