package restapi

import (
	"net/http"

	"gridline.opentransit.org/internal/models"
	"gridline.opentransit.org/internal/utils"
)

func (api *RestAPI) agenciesHandler(w http.ResponseWriter, r *http.Request) {
	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	agencies := api.GtfsManager.GetAgencies()
	list := make([]models.AgencyReference, 0, len(agencies))
	for i := range agencies {
		list = append(list, agencyReferenceFor(&agencies[i]))
	}

	response := models.NewListResponse(list, models.NewEmptyReferences(), false, api.Clock)
	api.sendResponse(w, r, response)
}

func (api *RestAPI) agencyHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)

	if err := utils.ValidateID(id); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	agency := api.GtfsManager.FindAgency(id)
	if agency == nil {
		api.sendNotFound(w, r)
		return
	}

	response := models.NewEntryResponse(agencyReferenceFor(agency), models.NewEmptyReferences(), api.Clock)
	api.sendResponse(w, r, response)
}
