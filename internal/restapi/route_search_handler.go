package restapi

import (
	"net/http"
	"strings"

	"gridline.opentransit.org/internal/models"
)

const maxSearchResults = 20

func (api *RestAPI) routeSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("input"))
	if query == "" {
		fieldErrors := map[string][]string{
			"input": {"input is required"},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	matches := api.GtfsManager.SearchRoutes(query, maxSearchResults)

	list := make([]models.Route, 0, len(matches))
	references := models.NewEmptyReferences()
	seenAgencies := make(map[string]bool)
	for _, route := range matches {
		list = append(list, routeModelFor(route))
		if !seenAgencies[route.Agency.Id] {
			seenAgencies[route.Agency.Id] = true
			references.Agencies = append(references.Agencies, agencyReferenceFor(route.Agency))
		}
	}

	response := models.NewListResponse(list, references, len(matches) == maxSearchResults, api.Clock)
	api.sendResponse(w, r, response)
}
