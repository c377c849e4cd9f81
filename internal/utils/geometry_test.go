package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBounds(t *testing.T) {
	lat := 38.627003
	lon := -121.530398
	radius := 500.0

	bounds := CalculateBounds(lat, lon, radius)

	latDiff := bounds.MaxLat - bounds.MinLat
	lonDiff := bounds.MaxLon - bounds.MinLon

	expectedLatDiff := 0.00898
	expectedLonDiff := 0.01153

	if latDiff < expectedLatDiff*0.99 || latDiff > expectedLatDiff*1.01 {
		t.Errorf("Lat diff %.10f is not close to expected %.10f", latDiff, expectedLatDiff)
	}

	if lonDiff < expectedLonDiff*0.99 || lonDiff > expectedLonDiff*1.01 {
		t.Errorf("Lon diff %.10f is not close to expected %.10f", lonDiff, expectedLonDiff)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same point (zero distance)",
			lat1:      40.7128,
			lon1:      -74.0060,
			lat2:      40.7128,
			lon2:      -74.0060,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "New York to Los Angeles",
			lat1:      40.7128,
			lon1:      -74.0060,
			lat2:      34.0522,
			lon2:      -118.2437,
			expected:  3935746, // approximately 3,936 km
			tolerance: 1000,
		},
		{
			name:      "London to Paris",
			lat1:      51.5074,
			lon1:      -0.1278,
			lat2:      48.8566,
			lon2:      2.3522,
			expected:  343556, // approximately 344 km
			tolerance: 1000,
		},
		{
			name:      "Equator crossing (0,0 to 0,90)",
			lat1:      0,
			lon1:      0,
			lat2:      0,
			lon2:      90,
			expected:  10007543, // quarter of Earth's circumference
			tolerance: 10000,
		},
		{
			name:      "Small distance (1 meter approx)",
			lat1:      0.0,
			lon1:      0.0,
			lat2:      0.00001,
			lon2:      0.00001,
			expected:  1.57,
			tolerance: 0.5,
		},
		{
			name:      "Crossing International Date Line",
			lat1:      35.6762,
			lon1:      139.6503, // Tokyo
			lat2:      37.7749,
			lon2:      -122.4194, // San Francisco
			expected:  8280207,   // approximately 8,280 km
			tolerance: 10000,
		},
		{
			name:      "Very close points",
			lat1:      40.7128,
			lon1:      -74.0060,
			lat2:      40.7129,
			lon2:      -74.0061,
			expected:  13.5,
			tolerance: 1.0,
		},
		{
			name:      "Antipodal points (opposite sides of Earth)",
			lat1:      40.0,
			lon1:      0.0,
			lat2:      -40.0,
			lon2:      180.0,
			expected:  20015087, // close to half Earth's circumference
			tolerance: 50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, result, tt.tolerance,
				"Distance should be approximately %f meters (±%f), got %f",
				tt.expected, tt.tolerance, result)
		})
	}
}

func TestDistance_Symmetry(t *testing.T) {
	lat1, lon1 := 40.7128, -74.0060  // New York
	lat2, lon2 := 34.0522, -118.2437 // Los Angeles

	distAB := Distance(lat1, lon1, lat2, lon2)
	distBA := Distance(lat2, lon2, lat1, lon1)

	assert.InDelta(t, distAB, distBA, 0.0001, "Distance should be symmetric")
}

func TestDistance_TriangleInequality(t *testing.T) {
	latA, lonA := 40.7128, -74.0060  // New York
	latB, lonB := 41.8781, -87.6298  // Chicago
	latC, lonC := 34.0522, -118.2437 // Los Angeles

	distAB := Distance(latA, lonA, latB, lonB)
	distBC := Distance(latB, lonB, latC, lonC)
	distAC := Distance(latA, lonA, latC, lonC)

	assert.LessOrEqual(t, distAC, distAB+distBC,
		"Triangle inequality should hold: AC <= AB + BC")
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		expected  float64
		tolerance float64
	}{
		{
			name:      "Due north",
			lat1:      0,
			lon1:      0,
			lat2:      1,
			lon2:      0,
			expected:  0,
			tolerance: 0.01,
		},
		{
			name:      "Due east",
			lat1:      0,
			lon1:      0,
			lat2:      0,
			lon2:      1,
			expected:  90,
			tolerance: 0.01,
		},
		{
			name:      "Due south",
			lat1:      1,
			lon1:      0,
			lat2:      0,
			lon2:      0,
			expected:  180,
			tolerance: 0.01,
		},
		{
			name:      "Due west",
			lat1:      0,
			lon1:      1,
			lat2:      0,
			lon2:      0,
			expected:  270,
			tolerance: 0.01,
		},
		{
			name:      "Northeast diagonal",
			lat1:      0,
			lon1:      0,
			lat2:      1,
			lon2:      1,
			expected:  45,
			tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Bearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, result, tt.tolerance)
		})
	}
}

func TestBearing_OutputRange(t *testing.T) {
	coords := []struct{ lat1, lon1, lat2, lon2 float64 }{
		{40.7128, -74.0060, 34.0522, -118.2437},
		{34.0522, -118.2437, 40.7128, -74.0060},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 179.9, 0, -179.9},
		{10, 10, 10, 10},
	}

	for _, c := range coords {
		b := Bearing(c.lat1, c.lon1, c.lat2, c.lon2)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
		assert.False(t, math.IsNaN(b))
	}
}

func TestCircularDelta(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		expected float64
	}{
		{name: "identical bearings", a: 90, b: 90, expected: 0},
		{name: "quarter turn", a: 0, b: 90, expected: 90},
		{name: "opposite bearings", a: 0, b: 180, expected: 180},
		{name: "wraparound near north", a: 350, b: 10, expected: 20},
		{name: "wraparound reversed", a: 10, b: 350, expected: 20},
		{name: "past half turn", a: 0, b: 270, expected: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CircularDelta(tt.a, tt.b), 1e-9)
		})
	}
}

func TestIsOutOfBounds(t *testing.T) {
	outer := CoordinateBounds{MinLat: 40, MaxLat: 41, MinLon: -75, MaxLon: -73}

	tests := []struct {
		name     string
		inner    CoordinateBounds
		expected bool
	}{
		{
			name:     "fully inside",
			inner:    CoordinateBounds{MinLat: 40.2, MaxLat: 40.8, MinLon: -74.5, MaxLon: -73.5},
			expected: false,
		},
		{
			name:     "partial overlap",
			inner:    CoordinateBounds{MinLat: 40.9, MaxLat: 41.5, MinLon: -74, MaxLon: -72},
			expected: false,
		},
		{
			name:     "north of outer",
			inner:    CoordinateBounds{MinLat: 41.5, MaxLat: 42, MinLon: -74, MaxLon: -73.5},
			expected: true,
		},
		{
			name:     "west of outer",
			inner:    CoordinateBounds{MinLat: 40.2, MaxLat: 40.8, MinLon: -80, MaxLon: -76},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsOutOfBounds(tt.inner, outer))
		})
	}
}
