package restapi

import (
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gridline.opentransit.org/internal/app"
)

// RestAPI serves the JSON API on top of the shared application state.
type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{Application: application}
}

// webResponseCacheDuration is the Cache-Control max-age for endpoints
// whose payloads only change on a feed reload.
const webResponseCacheDuration = 60

// SetRoutes registers every endpoint on the mux. API endpoints require
// a key; health, metrics, and config do not.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	if api.rateLimiter == nil {
		api.rateLimiter = NewRateLimitMiddleware(api.Config.RateLimit, time.Second, nil, api.Clock)
	}

	handle := func(pattern string, handler http.HandlerFunc, cacheSeconds int) {
		var h http.Handler = api.requireValidAPIKey(handler)
		h = CacheControlMiddleware(cacheSeconds, h)
		h = api.rateLimiter.Handler()(h)
		h = MetricsHandler(api.Metrics)(h)
		h = NewRequestLoggingMiddleware(api.Logger)(h)
		h = RequestIDMiddleware(h)
		mux.Handle(pattern, gzhttp.GzipHandler(h))
	}

	handle("GET /api/where/current-time.json", api.currentTimeHandler, 0)
	handle("GET /api/where/agencies.json", api.agenciesHandler, webResponseCacheDuration)
	handle("GET /api/where/agency/{id}", api.agencyHandler, webResponseCacheDuration)
	handle("GET /api/where/route/{id}", api.routeHandler, webResponseCacheDuration)
	handle("GET /api/where/search/route.json", api.routeSearchHandler, webResponseCacheDuration)
	handle("GET /api/where/routes-for-location.json", api.routesForLocationHandler, webResponseCacheDuration)
	handle("GET /api/where/stops-for-location.json", api.stopsForLocationHandler, webResponseCacheDuration)
	handle("GET /api/where/shape/{id}", api.shapeHandler, webResponseCacheDuration)
	handle("GET /api/where/timetable-for-route/{id}", api.timetableHandler, webResponseCacheDuration)
	handle("GET /api/where/route-profile/{id}", api.routeProfileHandler, webResponseCacheDuration)
	handle("GET /api/where/direction-statistics.json", api.directionStatisticsHandler, webResponseCacheDuration)
	handle("GET /api/where/trip-direction/{id}", api.tripDirectionHandler, webResponseCacheDuration)

	mux.HandleFunc("GET /api/where/config.json", api.configHandler)
	mux.HandleFunc("GET /health", api.healthHandler)

	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}

// requireValidAPIKey rejects requests whose key query parameter is
// missing or unknown.
func (api *RestAPI) requireValidAPIKey(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.sendUnauthorized(w, r)
			return
		}
		next(w, r)
	})
}

// Shutdown stops the background middleware goroutines.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
