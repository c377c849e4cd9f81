package utils

import "math"

// DefaultSimplifyTolerance is the Douglas-Peucker tolerance in degrees
// used when callers do not supply one. Roughly 11 meters of latitude.
const DefaultSimplifyTolerance = 0.0001

// Point is a geographic coordinate used by polyline simplification.
type Point struct {
	Lat float64
	Lon float64
}

// SimplifyPolyline reduces a polyline with the Douglas-Peucker algorithm.
// The tolerance is a perpendicular offset measured in degrees; points
// closer than the tolerance to the chord between kept neighbors are
// dropped. Endpoints are always kept. A tolerance <= 0 disables
// simplification and returns the input unchanged.
func SimplifyPolyline(points []Point, tolerance float64) []Point {
	if tolerance <= 0 || len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true

	type span struct {
		first int
		last  int
	}
	stack := []span{{0, len(points) - 1}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist := 0.0
		maxIdx := -1
		for i := s.first + 1; i < s.last; i++ {
			if d := perpendicularOffset(points[i], points[s.first], points[s.last]); d > maxDist {
				maxDist = d
				maxIdx = i
			}
		}

		if maxIdx >= 0 && maxDist > tolerance {
			keep[maxIdx] = true
			stack = append(stack, span{s.first, maxIdx}, span{maxIdx, s.last})
		}
	}

	out := make([]Point, 0, len(points))
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// perpendicularOffset is the distance in degree space from p to the line
// through a and b. When a == b it degrades to the point distance.
func perpendicularOffset(p, a, b Point) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	if dx == 0 && dy == 0 {
		return math.Hypot(p.Lon-a.Lon, p.Lat-a.Lat)
	}
	return math.Abs(dy*p.Lon-dx*p.Lat+b.Lon*a.Lat-b.Lat*a.Lon) / math.Hypot(dx, dy)
}
