package geometry

// Plane is defined by a unit normal and a point on it
type Plane struct {
	Normal Vector3
	Anchor Vector3
}

// NewPlane normalizes normal. It fails for a zero or non-finite normal.
func NewPlane(normal, anchor Vector3) (Plane, bool) {
	n := normal.Normalize()
	if n.IsZero() || !n.IsFinite() {
		return Plane{}, false
	}
	return Plane{Normal: n, Anchor: anchor}, true
}

// SignedDistance returns normal · (p − anchor)
func (pl Plane) SignedDistance(p Vector3) float64 {
	return pl.Normal.Dot(p.Sub(pl.Anchor))
}

// Project drops p onto the plane along the normal
func (pl Plane) Project(p Vector3) Vector3 {
	return p.Sub(pl.Normal.Mul(pl.SignedDistance(p)))
}
