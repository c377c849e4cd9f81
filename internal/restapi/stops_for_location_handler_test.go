package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopsForLocationHandler(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveEndpoint(t, api,
		"/api/where/stops-for-location.json?lat=47.600&lon=-122.340&radius=100&key=TEST")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	list := listFromResponse(t, body)
	require.Len(t, list, 1)

	stop := list[0].(map[string]interface{})
	assert.Equal(t, "s1", stop["id"])
	assert.Equal(t, "First & Main", stop["name"])

	routeIDs := collectAllNestedIdsFromObjects(t, list, "routeIds")
	assert.ElementsMatch(t, []string{"r10", "r20"}, routeIDs)
}

func TestStopsForLocationHandlerOrdersByDistance(t *testing.T) {
	api := createTestApi(t)

	// Between s1 and s2, slightly closer to s2.
	_, body := serveApiAndRetrieveEndpoint(t, api,
		"/api/where/stops-for-location.json?lat=47.600&lon=-122.3340&radius=2000&key=TEST")

	list := listFromResponse(t, body)
	require.GreaterOrEqual(t, len(list), 2)
	assert.Equal(t, "s2", list[0].(map[string]interface{})["id"])
	assert.Equal(t, "s1", list[1].(map[string]interface{})["id"])
}

func TestStopsForLocationHandlerRequiresCoordinates(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/where/stops-for-location.json?lat=47.6&key=TEST")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
