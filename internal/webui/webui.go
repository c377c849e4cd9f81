// Package webui serves the developer-facing debug pages. Everything
// here is hidden in production.
package webui

import (
	"net/http"

	"gridline.opentransit.org/internal/app"
)

type WebUI struct {
	*app.Application
}

func NewWebUI(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}

func (webUI *WebUI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug", webUI.debugIndexHandler)
}
