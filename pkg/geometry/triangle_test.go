package geometry

import (
	"math"
	"testing"
)

func rightTriangle() Triangle {
	return NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleArea(t *testing.T) {
	area := rightTriangle().Area()
	expected := 6.0 // (3 * 4) / 2

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	lengths := rightTriangle().EdgeLengths()

	for i, want := range [3]float64{3, 5, 4} {
		if math.Abs(lengths[i]-want) > 1e-10 {
			t.Errorf("Edge %d length failed: expected %v, got %v", i, want, lengths[i])
		}
	}
}

func TestTriangleNormal(t *testing.T) {
	n := rightTriangle().CalculateNormal()
	if n.Distance(NewVector3(0, 0, 1)) > 1e-10 {
		t.Errorf("CalculateNormal failed: expected +Z, got %v", n)
	}

	flat := NewTriangle(NewVector3(0, 1, 0), NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(2, 0, 0))
	if got := flat.FacetNormal(); got != NewVector3(0, 1, 0) {
		t.Errorf("degenerate facet should fall back to stored normal, got %v", got)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	if center, expected := tri.Center(), NewVector3(1, 1, 0); center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestBoundingBox(t *testing.T) {
	box := NewBoundingBox()
	if !box.Empty() {
		t.Fatal("new box should be empty")
	}
	if box.Diagonal() != 0 {
		t.Errorf("empty box diagonal should be 0, got %v", box.Diagonal())
	}

	box.Extend(NewVector3(-1, 0, 0))
	box.Extend(NewVector3(1, 2, 2))

	if got, want := box.Size(), NewVector3(2, 2, 2); got != want {
		t.Errorf("Size failed: expected %v, got %v", want, got)
	}
	if got, want := box.Center(), NewVector3(0, 1, 1); got != want {
		t.Errorf("Center failed: expected %v, got %v", want, got)
	}
	if got := box.MaxDimension(); got != 2 {
		t.Errorf("MaxDimension failed: expected 2, got %v", got)
	}
	if math.Abs(box.Volume()-8) > 1e-10 {
		t.Errorf("Volume failed: expected 8, got %v", box.Volume())
	}
}
