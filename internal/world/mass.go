package world

import "math"

// Growth happens in mass (area) space. Radius is always derived from mass;
// never add radii directly.

// MassFromRadius returns the area of a circle of radius r.
func MassFromRadius(r float64) float64 {
	return math.Pi * r * r
}

// RadiusFromMass is the inverse of MassFromRadius. Non-positive mass yields 0.
func RadiusFromMass(m float64) float64 {
	if m <= 0 {
		return 0
	}
	return math.Sqrt(m / math.Pi)
}

// AreaRatio returns (r/ref)², the size of a pellet relative to the reference pellet.
func AreaRatio(r, ref float64) float64 {
	q := r / ref
	return q * q
}
