package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gridline.opentransit.org/internal/app"
	"gridline.opentransit.org/internal/appconf"
	"gridline.opentransit.org/internal/clock"
	"gridline.opentransit.org/internal/gtfs"
	"gridline.opentransit.org/internal/logging"
	"gridline.opentransit.org/internal/metrics"
	"gridline.opentransit.org/internal/models"
)

// testClockTime is a Wednesday inside the fixture's calendar range, so
// the weekday service is active by default.
var testClockTime = time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	gtfsConfig := gtfs.Config{
		GtfsURL:      models.GetFixturePath(t),
		GTFSDataPath: ":memory:",
		Env:          appconf.Test,
	}

	manager, err := gtfs.InitGTFSManager(gtfsConfig)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"TEST"},
			RateLimit: 1000,
		},
		GtfsConfig:  gtfsConfig,
		Logger:      logging.NewLogger(false),
		GtfsManager: manager,
		Clock:       clock.NewMockClock(testClockTime),
		Metrics:     metrics.New(),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

// serveApiAndRetrieveEndpoint spins up the full route table and returns
// the raw response plus its decoded body.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, map[string]interface{}) {
	t.Helper()

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func entryFromResponse(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "response data has no entry object")
	return entry
}

func listFromResponse(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "response data has no list")
	return list
}
