package geo

import "math"

const earthRadiusKm = 6371.0

type Point struct {
	Lat float64
	Lng float64
}

// DistanceKm is the haversine great-circle distance between a and b.
func DistanceKm(a, b Point) float64 {
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Within reports whether b lies at most radiusKm from a. The boundary is inclusive.
func Within(a, b Point, radiusKm float64) (float64, bool) {
	d := DistanceKm(a, b)
	return d, d <= radiusKm
}

// Box is a lat/lng rectangle used to narrow a radius search before the
// exact distance check.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// BoundingBox returns the box enclosing the circle of radiusKm around p.
// It reports false when the circle reaches a pole, spans a hemisphere or
// crosses the antimeridian, where a single rectangle does not work.
func BoundingBox(p Point, radiusKm float64) (Box, bool) {
	// Padding in degrees absorbs floating point error at the edge.
	const pad = 1e-6

	ang := radiusKm / earthRadiusKm
	if ang >= math.Pi/2 {
		return Box{}, false
	}
	sinAng, cosLat := math.Sin(ang), math.Cos(rad(p.Lat))
	if sinAng >= cosLat {
		return Box{}, false
	}

	dLat := deg(ang) + pad
	dLng := deg(math.Asin(sinAng/cosLat)) + pad

	b := Box{
		MinLat: p.Lat - dLat, MaxLat: p.Lat + dLat,
		MinLng: p.Lng - dLng, MaxLng: p.Lng + dLng,
	}
	if b.MinLat < -90 || b.MaxLat > 90 || b.MinLng < -180 || b.MaxLng > 180 {
		return Box{}, false
	}
	return b, true
}

// Contains reports whether q lies inside the box, edges included.
func (b Box) Contains(q Point) bool {
	return q.Lat >= b.MinLat && q.Lat <= b.MaxLat && q.Lng >= b.MinLng && q.Lng <= b.MaxLng
}

func ValidPoint(p Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func rad(d float64) float64 {
	return d * math.Pi / 180
}

func deg(r float64) float64 {
	return r * 180 / math.Pi
}
