package restapi

import (
	"net/http"
	"strings"

	"gridline.opentransit.org/internal/models"
)

const defaultLocationRadiusMeters = 600.0

func (api *RestAPI) routesForLocationHandler(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, ok := api.parseLocationParams(w, r)
	if !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	keys := api.GtfsManager.RoutesNear(lat, lon, radius)

	list := make([]models.Route, 0, len(keys))
	references := models.NewEmptyReferences()
	seenAgencies := make(map[string]bool)
	for _, key := range keys {
		for _, route := range api.GtfsManager.RoutesForKey(key) {
			if query != "" && !strings.EqualFold(route.ShortName, query) {
				continue
			}
			list = append(list, routeModelFor(route))
			if !seenAgencies[route.Agency.Id] {
				seenAgencies[route.Agency.Id] = true
				references.Agencies = append(references.Agencies, agencyReferenceFor(route.Agency))
			}
		}
	}

	response := models.NewListResponse(list, references, false, api.Clock)
	api.sendResponse(w, r, response)
}
