package restapi

import (
	"net/http"

	"gridline.opentransit.org/internal/models"
	"gridline.opentransit.org/internal/utils"
)

// parseLocationParams reads lat, lon, and an optional radius from the
// query string. It writes a validation response and returns ok=false
// when lat or lon is missing or malformed.
func (api *RestAPI) parseLocationParams(w http.ResponseWriter, r *http.Request) (lat, lon, radius float64, ok bool) {
	fieldErrors := make(map[string][]string)

	lat, hasLat := utils.ParseFloatParam(r, "lat", fieldErrors)
	lon, hasLon := utils.ParseFloatParam(r, "lon", fieldErrors)
	radius, hasRadius := utils.ParseFloatParam(r, "radius", fieldErrors)

	if !hasLat && fieldErrors["lat"] == nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], "lat is required")
	}
	if !hasLon && fieldErrors["lon"] == nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], "lon is required")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return 0, 0, 0, false
	}

	if !hasRadius || radius <= 0 {
		radius = defaultLocationRadiusMeters
	}
	return lat, lon, radius, true
}

func (api *RestAPI) stopsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, ok := api.parseLocationParams(w, r)
	if !ok {
		return
	}

	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	nearby := api.GtfsManager.StopsNear(lat, lon, radius)

	stopIDs := make([]string, 0, len(nearby))
	for _, ns := range nearby {
		stopIDs = append(stopIDs, ns.Stop.ID)
	}
	routesByStop := api.GtfsManager.RoutesServingStops(stopIDs)

	list := make([]models.Stop, 0, len(nearby))
	for _, ns := range nearby {
		stop := ns.Stop
		list = append(list, models.NewStop(
			stop.ID,
			"",
			stop.Name,
			"",
			stop.ParentStation,
			"",
			stop.Lat,
			stop.Lon,
			0,
			routesByStop[stop.ID],
		))
	}

	response := models.NewListResponse(list, models.NewEmptyReferences(), false, api.Clock)
	api.sendResponse(w, r, response)
}
