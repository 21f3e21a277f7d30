package geometry

import "math"

const rayEpsilon = 1e-12

// Ray is a half-line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// RayHit describes the nearest intersection of a ray with a mesh
type RayHit struct {
	Distance float64
	Point    Vector3
	Normal   Vector3
	Triangle int
}

// At returns Origin + t*Direction
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle runs the Möller–Trumbore test against both faces of abc
// and returns the ray parameter of the hit
func (r Ray) IntersectTriangle(a, b, c Vector3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectMesh finds the nearest hit of a world-space ray with a mesh placed
// by xf. The returned point and normal are in world space.
func (r Ray) IntersectMesh(m *Mesh, xf Transform) (RayHit, bool) {
	local := r
	if !xf.IsIdentity() {
		inv := xf.Inverse()
		local = Ray{Origin: inv.Point(r.Origin), Direction: inv.Vector(r.Direction)}
	}

	best := math.Inf(1)
	bestIdx := -1
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		if t, ok := local.IntersectTriangle(tri.V1, tri.V2, tri.V3); ok && t < best {
			best, bestIdx = t, i
		}
	}
	if bestIdx < 0 {
		return RayHit{}, false
	}

	point := xf.Point(local.At(best))
	return RayHit{
		Distance: point.Distance(r.Origin),
		Point:    point,
		Normal:   xf.Normal(m.Triangle(bestIdx).FacetNormal()),
		Triangle: bestIdx,
	}, true
}
