package restapi

import (
	"net/http"

	"gridline.opentransit.org/internal/models"
)

func (api *RestAPI) directionStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	api.GtfsManager.RLock()
	defer api.GtfsManager.RUnlock()

	stats := api.GtfsManager.InferenceStats()

	diagnostics := []models.DiagnosticEntry{}
	for _, d := range api.GtfsManager.Diagnostics() {
		diagnostics = append(diagnostics, models.DiagnosticEntry{
			Kind:    d.Kind,
			RouteID: d.RouteID,
			TripID:  d.TripID,
			Message: d.Message,
		})
	}

	entry := models.DirectionStatisticsEntry{
		Provided:    stats.Provided,
		Exact:       stats.Exact,
		Subsequence: stats.Subsequence,
		Circular:    stats.Circular,
		Bearing:     stats.Bearing,
		Fallback:    stats.Fallback,
		Total:       stats.Total(),
		Diagnostics: diagnostics,
	}

	response := models.NewEntryResponse(entry, models.NewEmptyReferences(), api.Clock)
	api.sendResponse(w, r, response)
}
