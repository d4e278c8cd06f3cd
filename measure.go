package geodash

import (
	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// earthRadiusKm is the mean Earth radius (IUGG).
const earthRadiusKm = 6371.0088

// AreaKm2 returns the geodesic area of a polygonal geometry in square
// kilometres. Coordinates are longitude/latitude degrees. Non-polygonal
// geometries have zero area.
func AreaKm2(g orb.Geometry) float64 {
	var steradians float64
	switch g := g.(type) {
	case orb.Polygon:
		steradians = polygonArea(g)
	case orb.MultiPolygon:
		for _, p := range g {
			steradians += polygonArea(p)
		}
	}
	return steradians * earthRadiusKm * earthRadiusKm
}

// polygonArea is the outer ring's area minus its holes, on the unit sphere.
func polygonArea(p orb.Polygon) float64 {
	var a float64
	for i, ring := range p {
		if i == 0 {
			a += ringArea(ring)
		} else {
			a -= ringArea(ring)
		}
	}
	if a < 0 {
		return 0
	}
	return a
}

func ringArea(r orb.Ring) float64 {
	// GeoJSON rings repeat the first point at the end; s2 loops are implicitly closed.
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	if len(r) < 3 {
		return 0
	}
	pts := make([]s2.Point, len(r))
	for i, pt := range r {
		pts[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(pt.Lat(), pt.Lon()))
	}
	loop := s2.LoopFromPoints(pts)
	// Ring orientation varies between sources; take the smaller of the two regions.
	loop.Normalize()
	return loop.Area()
}

// CentreGeohash returns the geohash of the centre of g's bounding box.
func CentreGeohash(g orb.Geometry) string {
	if g == nil {
		return ""
	}
	c := g.Bound().Center()
	return geohash.Encode(c.Lat(), c.Lon())
}
