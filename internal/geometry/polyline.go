package geometry

import (
	"errors"
	"math"

	"github.com/golang/geo/s2"
)

// ErrDegeneratePolyline is returned when a polyline has fewer than two
// vertices. Callers must treat this as a validation failure, not a
// default-to-zero case.
var ErrDegeneratePolyline = errors.New("polyline requires at least 2 vertices")

// EarthRadiusMeters is the Earth's mean radius.
const EarthRadiusMeters = 6371000.0

const metersPerMile = 1609.344

// Point is a polyline vertex or query position in degrees.
type Point struct {
	Lon float64
	Lat float64
}

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Polyline is a read-only river centerline held as contiguous coordinate
// arrays with precomputed cumulative arc-lengths, so projection is a
// single cache-friendly scan over the segments.
type Polyline struct {
	lons []float64
	lats []float64
	// cum[i] is the arc-length in meters from vertex 0 to vertex i.
	cum []float64
}

// NewPolyline builds a polyline from its vertex sequence. Fails with
// ErrDegeneratePolyline when fewer than two vertices are given.
func NewPolyline(vertices []Point) (*Polyline, error) {
	if len(vertices) < 2 {
		return nil, ErrDegeneratePolyline
	}

	p := &Polyline{
		lons: make([]float64, len(vertices)),
		lats: make([]float64, len(vertices)),
		cum:  make([]float64, len(vertices)),
	}
	for i, v := range vertices {
		p.lons[i] = v.Lon
		p.lats[i] = v.Lat
		if i > 0 {
			seg := HaversineMeters(vertices[i-1], vertices[i])
			p.cum[i] = p.cum[i-1] + seg
		}
	}
	return p, nil
}

// NumVertices returns the vertex count.
func (p *Polyline) NumVertices() int {
	return len(p.lons)
}

// TotalMeters returns the full arc-length of the polyline.
func (p *Polyline) TotalMeters() float64 {
	return p.cum[len(p.cum)-1]
}

// TotalMiles returns the full arc-length in miles.
func (p *Polyline) TotalMiles() float64 {
	return p.TotalMeters() / metersPerMile
}

// Vertex returns the i-th vertex.
func (p *Polyline) Vertex(i int) Point {
	return Point{Lon: p.lons[i], Lat: p.lats[i]}
}

// Projection is the result of snapping a query point onto a polyline.
type Projection struct {
	// Point is the closest position on the polyline.
	Point Point
	// ArcMeters is the arc-length from the first vertex to Point.
	ArcMeters float64
	// Fraction is ArcMeters / TotalMeters, in [0, 1].
	Fraction float64
	// DistanceMeters is the great-circle distance from the query point
	// to Point.
	DistanceMeters float64
	// SegmentIndex is the index of the winning segment (its first vertex).
	SegmentIndex int
}

// Project snaps q onto the polyline. The per-segment parameter is
// clamped to [0, 1]; when two segments are equidistant (a shared vertex)
// the earlier segment wins, keeping the result deterministic.
func (p *Polyline) Project(q Point) Projection {
	best := Projection{DistanceMeters: math.Inf(1)}

	for i := 0; i < len(p.lons)-1; i++ {
		a := Point{Lon: p.lons[i], Lat: p.lats[i]}
		b := Point{Lon: p.lons[i+1], Lat: p.lats[i+1]}

		t := segmentParameter(q, a, b)
		cand := Point{
			Lon: a.Lon + t*(b.Lon-a.Lon),
			Lat: a.Lat + t*(b.Lat-a.Lat),
		}
		dist := HaversineMeters(q, cand)
		if dist < best.DistanceMeters {
			segLen := p.cum[i+1] - p.cum[i]
			best = Projection{
				Point:          cand,
				ArcMeters:      p.cum[i] + t*segLen,
				DistanceMeters: dist,
				SegmentIndex:   i,
			}
		}
	}

	total := p.TotalMeters()
	if total > 0 {
		best.Fraction = best.ArcMeters / total
	}
	// Guard against float drift at the endpoints.
	if best.Fraction < 0 {
		best.Fraction = 0
	} else if best.Fraction > 1 {
		best.Fraction = 1
	}
	return best
}

// segmentParameter returns the clamped [0, 1] position of q's
// perpendicular foot on segment a-b. Longitudes are scaled by the
// cosine of the mean latitude so the planar projection is locally
// distance-true.
func segmentParameter(q, a, b Point) float64 {
	scale := math.Cos((a.Lat + b.Lat) / 2 * math.Pi / 180)

	ax, ay := a.Lon*scale, a.Lat
	bx, by := b.Lon*scale, b.Lat
	qx, qy := q.Lon*scale, q.Lat

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		// Zero-length segment, the vertex itself is the candidate.
		return 0
	}

	t := ((qx-ax)*dx + (qy-ay)*dy) / lenSq
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
