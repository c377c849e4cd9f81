package restapi

import (
	"net/http"

	"github.com/OneBusAway/go-gtfs"
	"gridline.opentransit.org/internal/models"
	"gridline.opentransit.org/internal/utils"
)

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	queryParamID := utils.ExtractIDFromParams(r)

	// Validate ID
	if err := utils.ValidateID(queryParamID); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	agencyID, routeID, err := utils.ExtractAgencyIDAndCodeID(queryParamID)
	if err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	route := api.GtfsManager.FindRoute(routeID)
	if route == nil || route.Agency.Id != agencyID {
		api.sendNotFound(w, r)
		return
	}

	references := models.NewEmptyReferences()
	if agency := api.GtfsManager.FindAgency(agencyID); agency != nil {
		references.Agencies = append(references.Agencies, agencyReferenceFor(agency))
	}

	response := models.NewEntryResponse(routeModelFor(route), references, api.Clock)
	api.sendResponse(w, r, response)
}

// routeModelFor converts a feed route to its wire form with a combined
// "{agency}_{route}" ID.
func routeModelFor(route *gtfs.Route) models.Route {
	nullSafeShortName := route.ShortName
	if nullSafeShortName == "" {
		nullSafeShortName = route.LongName
	}

	return models.NewRoute(
		utils.FormCombinedID(route.Agency.Id, route.Id),
		route.Agency.Id,
		route.ShortName,
		route.LongName,
		route.Description,
		models.RouteType(route.Type),
		route.Url,
		route.Color,
		route.TextColor,
		nullSafeShortName,
	)
}

func agencyReferenceFor(agency *gtfs.Agency) models.AgencyReference {
	return models.NewAgencyReference(
		agency.Id,
		agency.Name,
		agency.Url,
		agency.Timezone,
		agency.Language,
		agency.Phone,
		agency.Email,
		agency.FareUrl,
		"",    // disclaimer
		false, // privateService
	)
}
