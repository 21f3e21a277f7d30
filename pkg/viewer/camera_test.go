package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

func unitBox() geometry.BoundingBox {
	b := geometry.NewBoundingBox()
	b.Extend(geometry.NewVector3(0, 0, 0))
	b.Extend(geometry.NewVector3(1, 1, 1))
	return b
}

func TestCameraFramesBox(t *testing.T) {
	c := NewCamera(unitBox())

	want := geometry.NewVector3(0.5, 0.5, 2.5)
	if got := c.Position(); got.Distance(want) > 1e-10 {
		t.Errorf("Position() = %v, want %v", got, want)
	}

	ndc, _, ok := c.Project(geometry.NewVector3(0.5, 0.5, 0.5), 1.5)
	if !ok {
		t.Fatal("target not visible")
	}
	if math.Abs(ndc.X) > 1e-10 || math.Abs(ndc.Y) > 1e-10 {
		t.Errorf("target projects to %v, want origin", ndc)
	}
}

func TestCameraProjectBehindEye(t *testing.T) {
	c := NewCamera(unitBox())

	if _, _, ok := c.Project(geometry.NewVector3(0.5, 0.5, 10), 1); ok {
		t.Error("point behind the eye reported visible")
	}
}

func TestCameraRayThroughProjection(t *testing.T) {
	c := NewCamera(unitBox())
	c.Rotate(0.3, 0.7)
	aspect := 4.0 / 3.0

	for _, p := range []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0.2, 0.9),
		geometry.NewVector3(0.3, 1, 0.1),
	} {
		ndc, _, ok := c.Project(p, aspect)
		if !ok {
			t.Fatalf("%v not visible", p)
		}
		ray := c.Ray(ndc, aspect)

		// distance from p to the ray's line
		toP := p.Sub(ray.Origin)
		closest := ray.At(toP.Dot(ray.Direction))
		if d := closest.Distance(p); d > 1e-7 {
			t.Errorf("ray through %v misses it by %g", p, d)
		}
	}
}

func TestCameraRotateClampsPitch(t *testing.T) {
	c := NewCamera(unitBox())
	c.Rotate(10, 0)
	if c.Pitch > math.Pi/2 {
		t.Errorf("Pitch = %v, want below the pole", c.Pitch)
	}
	c.Rotate(-20, 0)
	if c.Pitch < -math.Pi/2 {
		t.Errorf("Pitch = %v, want above the pole", c.Pitch)
	}
}

func TestCameraZoomKeepsDistancePositive(t *testing.T) {
	c := NewCamera(unitBox())
	for i := 0; i < 100; i++ {
		c.Zoom(-0.9)
	}
	if c.Distance <= c.Near {
		t.Errorf("Distance = %v, want above near plane %v", c.Distance, c.Near)
	}
}

func TestToNDC(t *testing.T) {
	got := ToNDC(geometry.NewVector2(0, 0), 200, 100)
	if got.X != -1 || got.Y != 1 {
		t.Errorf("ToNDC(top-left) = %v, want (-1, 1)", got)
	}
	got = ToNDC(geometry.NewVector2(100, 50), 200, 100)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("ToNDC(center) = %v, want (0, 0)", got)
	}
}
