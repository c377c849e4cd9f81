package models

// Stop is the stop entry used in lists and references.
type Stop struct {
	Code               string   `json:"code"`
	Direction          string   `json:"direction"`
	ID                 string   `json:"id"`
	Lat                float64  `json:"lat"`
	LocationType       int      `json:"locationType"`
	Lon                float64  `json:"lon"`
	Name               string   `json:"name"`
	Parent             string   `json:"parent"`
	RouteIDs           []string `json:"routeIds"`
	StaticRouteIDs     []string `json:"staticRouteIds"`
	WheelchairBoarding string   `json:"wheelchairBoarding"`
}

func NewStop(id, code, name, direction, parent, wheelchairBoarding string, lat, lon float64, locationType int, routeIDs []string) Stop {
	if routeIDs == nil {
		routeIDs = []string{}
	}
	return Stop{
		Code:               code,
		Direction:          direction,
		ID:                 id,
		Lat:                lat,
		LocationType:       locationType,
		Lon:                lon,
		Name:               name,
		Parent:             parent,
		RouteIDs:           routeIDs,
		StaticRouteIDs:     routeIDs,
		WheelchairBoarding: wheelchairBoarding,
	}
}
