package restapi

import (
	"net/http"
	"sort"

	"gridline.opentransit.org/internal/models"
)

func (api *RestAPI) routeProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, directionID, _, _, ok := api.parseTimetableParams(w, r)
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

	profile := api.GtfsManager.ProfileFor(routeKey, directionID)
	rowList := api.GtfsManager.RowListFor(routeKey, directionID)

	stations := make([]models.StationTierEntry, 0, len(rowList.Rows))
	for position, row := range rowList.Rows {
		stations = append(stations, models.StationTierEntry{
			StationID:     row.StationID,
			Name:          row.Name,
			Tier:          string(row.Tier),
			Position:      position,
			BoundaryScore: profile.BoundaryScores[row.StationID],
		})
	}

	edges := make([]models.EdgeFrequencyEntry, 0, len(profile.EdgeFrequencies))
	for edge, frequency := range profile.EdgeFrequencies {
		edges = append(edges, models.EdgeFrequencyEntry{
			From:      edge.From,
			To:        edge.To,
			Frequency: frequency,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	diagnostics := make([]string, 0, len(profile.Diagnostics))
	for _, diag := range profile.Diagnostics {
		diagnostics = append(diagnostics, diag.Message)
	}

	coreOrder := profile.CoreOrder
	if coreOrder == nil {
		coreOrder = []string{}
	}

	entry := models.RouteProfileEntry{
		RouteID:     profile.RouteKey,
		DirectionID: profile.DirectionID,
		TotalTrips:  profile.TotalTrips,
		CoreOrder:   coreOrder,
		Stations:    stations,
		Edges:       edges,
		Diagnostics: diagnostics,
	}

	response := models.NewEntryResponse(entry, api.routeReferences(routeKey), api.Clock)
	api.sendResponse(w, r, response)
}
