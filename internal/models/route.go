package models

// RouteType is the GTFS route_type code.
type RouteType int

const (
	RouteTypeTram       RouteType = 0
	RouteTypeSubway     RouteType = 1
	RouteTypeRail       RouteType = 2
	RouteTypeBus        RouteType = 3
	RouteTypeFerry      RouteType = 4
	RouteTypeCableCar   RouteType = 5
	RouteTypeGondola    RouteType = 6
	RouteTypeFunicular  RouteType = 7
	RouteTypeTrolleybus RouteType = 11
	RouteTypeMonorail   RouteType = 12
)

// Route is the route entry used in lists and references.
type Route struct {
	AgencyID          string    `json:"agencyId"`
	Color             string    `json:"color"`
	Description       string    `json:"description"`
	ID                string    `json:"id"`
	LongName          string    `json:"longName"`
	NullSafeShortName string    `json:"nullSafeShortName"`
	ShortName         string    `json:"shortName"`
	TextColor         string    `json:"textColor"`
	Type              RouteType `json:"type"`
	URL               string    `json:"url"`
}

func NewRoute(id, agencyID, shortName, longName, description string, routeType RouteType, url, color, textColor, nullSafeShortName string) Route {
	return Route{
		AgencyID:          agencyID,
		Color:             color,
		Description:       description,
		ID:                id,
		LongName:          longName,
		NullSafeShortName: nullSafeShortName,
		ShortName:         shortName,
		TextColor:         textColor,
		Type:              routeType,
		URL:               url,
	}
}
