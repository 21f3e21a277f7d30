package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Camera orbits a target point on a sphere
type Camera struct {
	Target   geometry.Vector3
	Distance float64
	Pitch    float64 // elevation above the XZ plane
	Yaw      float64 // rotation around +Y
	FOV      float64 // vertical field of view in radians
	Near     float64
	Far      float64
}

const maxPitch = math.Pi/2 - 0.1

// NewCamera creates a camera looking down -Z at a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	c := &Camera{FOV: math.Pi / 4}
	c.Frame(bbox)
	return c
}

// Frame centers the camera on bbox and backs off far enough to see it
func (c *Camera) Frame(bbox geometry.BoundingBox) {
	distance := 2.0
	c.Target = geometry.Vector3{}
	if !bbox.Empty() {
		c.Target = bbox.Center()
		if d := bbox.MaxDimension() * 2; d > 0 {
			distance = d
		}
	}
	c.Distance = distance
	c.Near = distance * 0.01
	c.Far = distance * 100
	c.Pitch, c.Yaw = 0, 0
}

// Position returns the eye position
func (c *Camera) Position() geometry.Vector3 {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)
	return c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits by the given angles, keeping the pitch away from the poles
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+deltaPitch))
	c.Yaw += deltaYaw
}

// Zoom scales the distance by (1 + delta)
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1 + delta
	if min := c.Near * 2; c.Distance < min {
		c.Distance = min
	}
}

// Pan shifts the target in the view plane. dx and dy are fractions of the
// distance.
func (c *Camera) Pan(dx, dy float64) {
	forward := c.Target.Sub(c.Position()).Normalize()
	right := forward.Cross(geometry.NewVector3(0, 1, 0)).Normalize()
	up := right.Cross(forward).Normalize()
	c.Target = c.Target.Add(right.Mul(dx * c.Distance)).Add(up.Mul(dy * c.Distance))
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position().ToVec3(), c.Target.ToVec3(), mgl64.Vec3{0, 1, 0})
}

// ViewProjection returns the world-to-clip matrix for an aspect ratio
func (c *Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}
	return mgl64.Perspective(c.FOV, aspect, c.Near, c.Far).Mul4(c.View())
}

// Project maps a world point to NDC and its NDC depth. ok is false behind
// the eye.
func (c *Camera) Project(p geometry.Vector3, aspect float64) (geometry.Vector2, float64, bool) {
	return project(c.ViewProjection(aspect), p)
}

func project(vp mgl64.Mat4, p geometry.Vector3) (geometry.Vector2, float64, bool) {
	clip := vp.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	w := clip.W()
	if w <= 1e-9 {
		return geometry.Vector2{}, 0, false
	}
	return geometry.NewVector2(clip.X()/w, clip.Y()/w), clip.Z() / w, true
}

// Ray returns the world-space ray through an NDC position
func (c *Camera) Ray(ndc geometry.Vector2, aspect float64) geometry.Ray {
	inv := c.ViewProjection(aspect).Inv()
	unproject := func(z float64) geometry.Vector3 {
		v := inv.Mul4x1(mgl64.Vec4{ndc.X, ndc.Y, z, 1})
		return geometry.FromVec3(v.Vec3().Mul(1 / v.W()))
	}
	near, far := unproject(-1), unproject(1)
	return geometry.Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// Projector adapts the camera to the overlay for one frame
func (c *Camera) Projector(aspect float64) measurement.Projector {
	vp := c.ViewProjection(aspect)
	return measurement.ProjectorFunc(func(p geometry.Vector3) (geometry.Vector2, bool) {
		ndc, _, ok := project(vp, p)
		return ndc, ok
	})
}

// ToNDC converts a widget-space position to NDC
func ToNDC(pos geometry.Vector2, width, height float64) geometry.Vector2 {
	return geometry.NewVector2(2*pos.X/width-1, 1-2*pos.Y/height)
}
