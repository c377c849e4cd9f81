package gtfs

import (
	"github.com/OneBusAway/go-gtfs"
	polyline "github.com/twpayne/go-polyline"
	"gridline.opentransit.org/internal/utils"
)

// RegionBounds is the geographic center and span of the feed.
type RegionBounds struct {
	Lat     float64
	Lon     float64
	LatSpan float64
	LonSpan float64
}

// ComputeRegionBounds calculates the feed's geographic boundaries from
// shape points, falling back to stop coordinates for feeds without
// shapes. Returns nil when neither carries a coordinate.
func ComputeRegionBounds(shapes []gtfs.Shape, stops []gtfs.Stop) *RegionBounds {
	var minLat, maxLat, minLon, maxLon float64
	first := true

	extend := func(lat, lon float64) {
		if first {
			minLat, maxLat = lat, lat
			minLon, maxLon = lon, lon
			first = false
			return
		}
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
	}

	for _, shape := range shapes {
		for _, point := range shape.Points {
			extend(point.Latitude, point.Longitude)
		}
	}

	if first {
		for i := range stops {
			s := &stops[i]
			if s.Latitude != nil && s.Longitude != nil {
				extend(*s.Latitude, *s.Longitude)
			}
		}
	}

	if first {
		return nil
	}

	return &RegionBounds{
		Lat:     (minLat + maxLat) / 2,
		Lon:     (minLon + maxLon) / 2,
		LatSpan: maxLat - minLat,
		LonSpan: maxLon - minLon,
	}
}

// GetRegionBounds returns the feed bounds, or zeros when unknown.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) GetRegionBounds() (lat, lon, latSpan, lonSpan float64) {
	if manager.regionBounds == nil {
		return 0, 0, 0, 0
	}
	return manager.regionBounds.Lat, manager.regionBounds.Lon, manager.regionBounds.LatSpan, manager.regionBounds.LonSpan
}

// Shape is a simplified route geometry with its encoded polyline.
type Shape struct {
	ID      string
	Points  []utils.Point
	Encoded string
	Length  int
}

// ShapeFor returns the simplified geometry of a shape. A tolerance of
// zero takes the configured default, then the package default. Unknown
// IDs return nil.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) ShapeFor(shapeID string, toleranceDeg float64) *Shape {
	if toleranceDeg <= 0 {
		toleranceDeg = manager.config.ShapeTolerance
	}
	if toleranceDeg <= 0 {
		toleranceDeg = utils.DefaultSimplifyTolerance
	}

	for i := range manager.gtfsData.Shapes {
		raw := &manager.gtfsData.Shapes[i]
		if raw.ID != shapeID {
			continue
		}

		points := make([]utils.Point, 0, len(raw.Points))
		for _, p := range raw.Points {
			points = append(points, utils.Point{Lat: p.Latitude, Lon: p.Longitude})
		}
		simplified := utils.SimplifyPolyline(points, toleranceDeg)

		coords := make([][]float64, 0, len(simplified))
		for _, p := range simplified {
			coords = append(coords, []float64{p.Lat, p.Lon})
		}

		return &Shape{
			ID:      shapeID,
			Points:  simplified,
			Encoded: string(polyline.EncodeCoords(coords)),
			Length:  len(simplified),
		}
	}

	return nil
}
