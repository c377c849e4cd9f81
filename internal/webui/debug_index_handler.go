package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"gridline.opentransit.org/internal/appconf"
)

//go:embed debug_index.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		// Log the actual error server-side
		slog.Error("failed to parse debug template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		slog.Error("failed to execute debug template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	webUI.GtfsManager.RLock()
	defer webUI.GtfsManager.RUnlock()

	staticData := webUI.GtfsManager.GetStaticData()

	switch dataType {
	case "agencies":
		data = staticData.Agencies
		title = "GTFS Static - Agencies"
	case "routes":
		data = staticData.Routes
		title = "GTFS Static - Routes"
	case "stops":
		data = staticData.Stops
		title = "GTFS Static - Stops"
	case "services":
		data = staticData.Services
		title = "GTFS Static - Services"
	case "trips":
		data = staticData.Trips
		title = "GTFS Static - Trips"
	case "shapes":
		data = staticData.Shapes
		title = "GTFS Static - Shapes"
	case "diagnostics":
		data = webUI.GtfsManager.Diagnostics()
		title = "Derivation - Diagnostics"
	case "stats":
		data = webUI.GtfsManager.InferenceStats()
		title = "Derivation - Direction Outcomes"
	case "cache":
		profiles, rowLists, columns, hits, misses := webUI.GtfsManager.CacheCounts()
		data = map[string]uint64{
			"profiles": uint64(profiles),
			"rowLists": uint64(rowLists),
			"columns":  uint64(columns),
			"hits":     hits,
			"misses":   misses,
		}
		title = "Derivation - Cache"
	case "profile":
		routeKey, found := webUI.GtfsManager.RouteKeyFor(r.URL.Query().Get("routeId"))
		if !found {
			http.NotFound(w, r)
			return
		}
		direction, _ := strconv.Atoi(r.URL.Query().Get("direction"))
		data = webUI.GtfsManager.ProfileFor(routeKey, direction)
		title = "Derivation - Route Profile"
	case "rows":
		routeKey, found := webUI.GtfsManager.RouteKeyFor(r.URL.Query().Get("routeId"))
		if !found {
			http.NotFound(w, r)
			return
		}
		direction, _ := strconv.Atoi(r.URL.Query().Get("direction"))
		data = webUI.GtfsManager.RowListFor(routeKey, direction)
		title = "Derivation - Row List"
	default:
		data = map[string]string{
			"error": "Please use one of the following: agencies, routes, stops, services, trips, shapes, diagnostics, stats, cache, profile, rows.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
