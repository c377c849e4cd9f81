package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeHandler(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/api/where/shape/sh1.json?key=TEST")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryFromResponse(t, body)
	assert.Equal(t, "sh1", entry["shapeId"])
	assert.NotEmpty(t, entry["points"])
	assert.Greater(t, entry["length"], float64(1))
}

func TestShapeHandlerSimplifiesWithTolerance(t *testing.T) {
	api := createTestApi(t)

	// A huge tolerance collapses the zigzag to its endpoints.
	_, body := serveApiAndRetrieveEndpoint(t, api, "/api/where/shape/sh1.json?tolerance=1.0&key=TEST")

	entry := entryFromResponse(t, body)
	assert.Equal(t, float64(2), entry["length"])
}

func TestShapeHandlerNotFound(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/where/shape/unknown.json?key=TEST")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
