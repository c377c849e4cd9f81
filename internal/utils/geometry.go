package utils

import "math"

const (
	// RadiusOfEarthInMeters is RADIUS_OF_EARTH_IN_KM * 1000
	RadiusOfEarthInMeters = 6371010.0

	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// CoordinateBounds represents a bounding box with min/max latitude and longitude
type CoordinateBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Distance calculates the great-circle distance in meters between two
// points using the haversine formula on a spherical Earth.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * degToRad
	lat2Rad := lat2 * degToRad
	dLatRad := (lat2 - lat1) * degToRad
	dLonRad := (lon2 - lon1) * degToRad

	sinLat := math.Sin(dLatRad / 2)
	sinLon := math.Sin(dLonRad / 2)

	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	return RadiusOfEarthInMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Bearing calculates the initial bearing in degrees from the first point
// to the second, normalized to [0, 360). 0 is north, 90 is east.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * degToRad
	lat2Rad := lat2 * degToRad
	dLonRad := (lon2 - lon1) * degToRad

	y := math.Sin(dLonRad) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLonRad)

	bearing := math.Atan2(y, x) * radToDeg
	bearing = math.Mod(bearing+360, 360)
	if bearing == 360 {
		bearing = 0
	}
	return bearing
}

// CircularDelta returns the smallest angular distance between two
// bearings, accounting for wraparound. The result is in [0, 180].
func CircularDelta(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// CalculateBounds returns the bounding box of the circle centered at
// (lat, lon) with the given radius in meters.
func CalculateBounds(lat, lon, distance float64) CoordinateBounds {
	latRadians := lat * degToRad
	lonRadians := lon * degToRad

	latRadius := RadiusOfEarthInMeters
	lonRadius := math.Cos(latRadians) * RadiusOfEarthInMeters

	latOffset := distance / latRadius
	lonOffset := distance / lonRadius

	return CoordinateBounds{
		MinLat: (latRadians - latOffset) * radToDeg,
		MaxLat: (latRadians + latOffset) * radToDeg,
		MinLon: (lonRadians - lonOffset) * radToDeg,
		MaxLon: (lonRadians + lonOffset) * radToDeg,
	}
}

// CalculateBoundsFromSpan calculates a bounding box from lat/lon offsets.
func CalculateBoundsFromSpan(lat, lon, latOffset, lonOffset float64) CoordinateBounds {
	return CoordinateBounds{
		MinLat: lat - latOffset,
		MaxLat: lat + latOffset,
		MinLon: lon - lonOffset,
		MaxLon: lon + lonOffset,
	}
}

// IsOutOfBounds returns true only if the inner bounds have no overlap
// with the outer bounds.
func IsOutOfBounds(inner, outer CoordinateBounds) bool {
	return inner.MaxLat < outer.MinLat ||
		inner.MinLat > outer.MaxLat ||
		inner.MaxLon < outer.MinLon ||
		inner.MinLon > outer.MaxLon
}
