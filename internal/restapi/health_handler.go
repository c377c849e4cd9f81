package restapi

import (
	"encoding/json"
	"net/http"

	"gridline.opentransit.org/internal/logging"
)

// HealthResponse represents the JSON response from the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// healthHandler verifies store connectivity and readiness.
// It returns 503 Service Unavailable until the feed is loaded and derived.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Liveness: is the basic infrastructure initialized?
	if api.Application == nil || api.GtfsManager == nil || api.GtfsManager.Store == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "unavailable",
			Detail: "manager or results store not initialized",
		})
		return
	}

	// Readiness: has a feed snapshot been derived? This keeps traffic off
	// cold instances still parsing and inferring.
	if !api.GtfsManager.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "starting",
			Detail: "feed is being loaded and derived",
		})
		return
	}

	// Connectivity: is the results store actually reachable?
	if err := api.GtfsManager.Store.Ping(r.Context()); err != nil {
		logging.LogError(api.Logger, "results store ping failed", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "unavailable",
			Detail: "results store connection failed",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{
		Status: "ok",
	})
}
