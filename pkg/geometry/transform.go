package geometry

import "github.com/go-gl/mathgl/mgl64"

// Transform maps local coordinates to world coordinates.
// The zero value is the identity.
type Transform struct {
	m   mgl64.Mat4
	set bool
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{m: mgl64.Ident4(), set: true}
}

// NewTransform wraps a column-major homogeneous matrix
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{m: m, set: true}
}

// Translation returns a transform that moves points by offset
func Translation(offset Vector3) Transform {
	return NewTransform(mgl64.Translate3D(offset.X, offset.Y, offset.Z))
}

// Scale returns a uniform scale transform
func Scale(factor float64) Transform {
	return NewTransform(mgl64.Scale3D(factor, factor, factor))
}

// Rotation returns a rotation of angle radians around axis
func Rotation(angle float64, axis Vector3) Transform {
	return NewTransform(mgl64.HomogRotate3D(angle, toVec3(axis).Normalize()))
}

// Matrix returns the underlying matrix
func (t Transform) Matrix() mgl64.Mat4 {
	if !t.set {
		return mgl64.Ident4()
	}
	return t.m
}

// Then returns the transform that applies t first and next second
func (t Transform) Then(next Transform) Transform {
	return NewTransform(next.Matrix().Mul4(t.Matrix()))
}

// Inverse returns the inverse transform. Singular matrices invert to zero.
func (t Transform) Inverse() Transform {
	return NewTransform(t.Matrix().Inv())
}

// IsIdentity reports whether the transform leaves points unchanged
func (t Transform) IsIdentity() bool {
	return !t.set || t.m.ApproxEqual(mgl64.Ident4())
}

// Point transforms a position
func (t Transform) Point(p Vector3) Vector3 {
	if !t.set {
		return p
	}
	v := t.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	if w := v.W(); w != 0 && w != 1 {
		v = v.Mul(1 / w)
	}
	return Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Vector transforms a direction, ignoring translation
func (t Transform) Vector(d Vector3) Vector3 {
	if !t.set {
		return d
	}
	v := t.m.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Normal transforms a surface normal with the inverse transpose and
// renormalizes it
func (t Transform) Normal(n Vector3) Vector3 {
	if !t.set {
		return n.Normalize()
	}
	nm := t.m.Mat3().Inv().Transpose()
	return fromVec3(nm.Mul3x1(toVec3(n))).Normalize()
}

func toVec3(v Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// ToVec3 converts to the mathgl vector type
func (v Vector3) ToVec3() mgl64.Vec3 {
	return toVec3(v)
}

// FromVec3 converts from the mathgl vector type
func FromVec3(v mgl64.Vec3) Vector3 {
	return fromVec3(v)
}
