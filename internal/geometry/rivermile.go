package geometry

import (
	"fmt"
	"math"
)

// RiverMile converts an arc-length fraction into a river-mile value,
// rounded to one decimal place. When headwaterFirst is set the first
// polyline vertex is river-mile 0; otherwise the polyline is stored
// mouth-first and the fraction is inverted.
//
// This is the single source of truth for river-mile assignment. Every
// path that positions a point on a river (creation, re-snap, ad-hoc
// preview) must go through it so callers never disagree.
func RiverMile(fraction, lengthMiles float64, headwaterFirst bool) (float64, error) {
	if fraction < 0 || fraction > 1 || math.IsNaN(fraction) {
		return 0, fmt.Errorf("arc fraction %v outside [0, 1]", fraction)
	}
	if lengthMiles < 0 || math.IsNaN(lengthMiles) {
		return 0, fmt.Errorf("river length %v is negative", lengthMiles)
	}

	mile := fraction * lengthMiles
	if !headwaterFirst {
		mile = (1 - fraction) * lengthMiles
	}
	return math.Round(mile*10) / 10, nil
}

// MileForPoint snaps q onto the polyline and returns the snapped point
// together with its river-mile.
func MileForPoint(p *Polyline, q Point, lengthMiles float64, headwaterFirst bool) (Point, float64, error) {
	proj := p.Project(q)
	mile, err := RiverMile(proj.Fraction, lengthMiles, headwaterFirst)
	if err != nil {
		return Point{}, 0, err
	}
	return proj.Point, mile, nil
}
