package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// CalculateNormal computes the unit normal from the winding order.
// A degenerate triangle yields the zero vector.
func (t Triangle) CalculateNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// FacetNormal prefers the computed normal and falls back to the stored one
// for degenerate facets
func (t Triangle) FacetNormal() Vector3 {
	if n := t.CalculateNormal(); !n.IsZero() {
		return n
	}
	return t.Normal.Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

// Vertices returns the corners in winding order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// Edges returns ab, bc and ca
func (t Triangle) Edges() [3][2]Vector3 {
	return [3][2]Vector3{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}}
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{t.V1.Distance(t.V2), t.V2.Distance(t.V3), t.V3.Distance(t.V1)}
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}
