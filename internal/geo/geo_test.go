package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	bogota := Point{Lat: 4.7110, Lng: -74.0721}
	medellin := Point{Lat: 6.2442, Lng: -75.5812}

	assert.InDelta(t, 240, DistanceKm(bogota, medellin), 5)
	assert.Equal(t, 0.0, DistanceKm(bogota, bogota))
	assert.InDelta(t, DistanceKm(bogota, medellin), DistanceKm(medellin, bogota), 1e-9)
}

func TestWithinIsInclusive(t *testing.T) {
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 0, Lng: 0.1}
	d := DistanceKm(a, b)

	_, ok := Within(a, b, d)
	assert.True(t, ok, "point exactly on the radius counts")

	_, ok = Within(a, b, d-0.001)
	assert.False(t, ok)
}

func TestValidPoint(t *testing.T) {
	assert.True(t, ValidPoint(Point{Lat: -90, Lng: 180}))
	assert.False(t, ValidPoint(Point{Lat: 91, Lng: 0}))
	assert.False(t, ValidPoint(Point{Lat: 0, Lng: -181}))
}

func TestBoundingBoxContainsCircle(t *testing.T) {
	center := Point{Lat: 4.65, Lng: -74.05}
	box, ok := BoundingBox(center, 10)
	require.True(t, ok)

	north := Point{Lat: center.Lat + 10/111.32*0.99, Lng: center.Lng}
	assert.True(t, north.Lat < box.MaxLat)
	assert.True(t, box.MinLng < center.Lng && center.Lng < box.MaxLng)

	_, ok = BoundingBox(Point{Lat: 89.99, Lng: 0}, 50)
	assert.False(t, ok)
	_, ok = BoundingBox(Point{Lat: 0, Lng: 179.99}, 50)
	assert.False(t, ok)
}

// destination walks distKm from p along bearing (degrees from north).
func destination(p Point, distKm, bearing float64) Point {
	lat1, lng1 := rad(p.Lat), rad(p.Lng)
	ang, brg := distKm/earthRadiusKm, rad(bearing)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ang) + math.Cos(lat1)*math.Sin(ang)*math.Cos(brg))
	lng2 := lng1 + math.Atan2(
		math.Sin(brg)*math.Sin(ang)*math.Cos(lat1),
		math.Cos(ang)-math.Sin(lat1)*math.Sin(lat2),
	)
	return Point{Lat: deg(lat2), Lng: deg(lng2)}
}

func TestBoundingBoxCoversCircleEdge(t *testing.T) {
	cases := []struct {
		center   Point
		radiusKm float64
	}{
		{Point{Lat: 4.65, Lng: -74.05}, 10},
		{Point{Lat: 60, Lng: 10}, 2000},
		{Point{Lat: 70, Lng: 20}, 1000},
		{Point{Lat: -33.87, Lng: 151.2}, 500},
		{Point{Lat: -55, Lng: -68}, 1500},
		{Point{Lat: 0, Lng: 0}, 5000},
	}

	for _, tc := range cases {
		box, ok := BoundingBox(tc.center, tc.radiusKm)
		require.True(t, ok, "center %v r=%v", tc.center, tc.radiusKm)

		for step := 0; step < 720; step++ {
			edge := destination(tc.center, tc.radiusKm, float64(step)/2)
			assert.True(t, box.Contains(edge),
				"center %v r=%v: %v outside %+v", tc.center, tc.radiusKm, edge, box)
		}
	}
}

func TestBoundingBoxKeepsHighLatitudeMatches(t *testing.T) {
	center := Point{Lat: 60, Lng: 10}
	far := Point{Lat: 59.95, Lng: 46.40}

	_, inside := Within(center, far, 2000)
	require.True(t, inside)

	box, ok := BoundingBox(center, 2000)
	require.True(t, ok)
	assert.True(t, box.Contains(far))
}

func TestBoundingBoxRejectsHemisphere(t *testing.T) {
	_, ok := BoundingBox(Point{Lat: 0, Lng: 0}, 20000)
	assert.False(t, ok)

	_, ok = BoundingBox(Point{Lat: 80, Lng: 0}, 1200)
	assert.False(t, ok, "circle reaches the pole")
}
