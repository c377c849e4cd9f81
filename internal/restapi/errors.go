package restapi

import (
	"net/http"

	"gridline.opentransit.org/internal/logging"
	"gridline.opentransit.org/internal/models"
)

// validationErrorResponse reports field-level input problems as a 400
// envelope carrying the field errors as its data.
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)

	response := models.ResponseModel{
		Code:        http.StatusBadRequest,
		CurrentTime: models.ResponseCurrentTime(api.Clock),
		Data:        map[string]interface{}{"fieldErrors": fieldErrors},
		Text:        "invalid request",
		Version:     2,
	}

	api.sendResponse(w, r, response)
}

// serverErrorResponse logs an unexpected error and reports a generic
// 500 to the client.
func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.Logger, "internal server error", err)
	http.Error(w, "the server encountered a problem and could not process your request", http.StatusInternalServerError)
}
