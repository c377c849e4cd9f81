package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeHandler(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/api/where/current-time.json?key=TEST")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(200), body["code"])
	assert.Equal(t, float64(2), body["version"])

	entry := entryFromResponse(t, body)
	require.Contains(t, entry, "readableTime")
	assert.Equal(t, float64(testClockTime.UnixMilli()), entry["time"])
}

func TestCurrentTimeHandlerRequiresKey(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/api/where/current-time.json")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", body["text"])
}
