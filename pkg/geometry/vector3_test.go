package geometry

import (
	"math"
	"testing"
)

func TestVector3Arithmetic(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)

	if got, want := v1.Add(v2), NewVector3(5, 7, 9); got != want {
		t.Errorf("Add failed: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), NewVector3(3, 3, 3); got != want {
		t.Errorf("Sub failed: expected %v, got %v", want, got)
	}
	if got, want := v1.Mul(2), NewVector3(2, 4, 6); got != want {
		t.Errorf("Mul failed: expected %v, got %v", want, got)
	}
	if got := v1.Dot(v2); math.Abs(got-32) > 1e-10 {
		t.Errorf("Dot failed: expected 32, got %v", got)
	}
}

func TestVector3Cross(t *testing.T) {
	result := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3DistanceIsSymmetric(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(3, 4, 0)

	if d := a.Distance(b); math.Abs(d-5) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", d)
	}
	if a.Distance(b) != b.Distance(a) {
		t.Errorf("Distance not symmetric: %v vs %v", a.Distance(b), b.Distance(a))
	}
	if d := b.Distance(b); d != 0 {
		t.Errorf("Distance to self should be 0, got %v", d)
	}
}

func TestVector3Normalize(t *testing.T) {
	normalized := NewVector3(3, 4, 0).Normalize()
	if math.Abs(normalized.Length()-1) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", normalized.Length())
	}

	if zero := (Vector3{}).Normalize(); !zero.IsZero() {
		t.Errorf("Normalize of zero vector should stay zero, got %v", zero)
	}
}

func TestVector3IsFinite(t *testing.T) {
	if !NewVector3(1, 2, 3).IsFinite() {
		t.Error("expected finite vector")
	}
	if NewVector3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if NewVector3(0, math.Inf(-1), 0).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(2, 0, 0)

	cases := []struct {
		p, want Vector3
	}{
		{NewVector3(1, 1, 0), NewVector3(1, 0, 0)},
		{NewVector3(-1, 1, 0), a},
		{NewVector3(5, -2, 1), b},
	}
	for _, c := range cases {
		if got := ClosestPointOnSegment(c.p, a, b); got.Distance(c.want) > 1e-10 {
			t.Errorf("ClosestPointOnSegment(%v): expected %v, got %v", c.p, c.want, got)
		}
	}

	if got := ClosestPointOnSegment(NewVector3(1, 1, 1), a, a); got != a {
		t.Errorf("degenerate segment should return its start, got %v", got)
	}
}

func TestCentroid(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
		NewVector3(2, 2, 0),
		NewVector3(0, 2, 0),
	}
	if got, want := Centroid(points), NewVector3(1, 1, 0); got != want {
		t.Errorf("Centroid failed: expected %v, got %v", want, got)
	}
	if got := Centroid(nil); !got.IsZero() {
		t.Errorf("Centroid of nothing should be zero, got %v", got)
	}
}

func TestVector2Cross(t *testing.T) {
	x := NewVector2(1, 0)
	y := NewVector2(0, 1)
	if x.Cross(y) != 1 || y.Cross(x) != -1 {
		t.Errorf("Cross sign wrong: %v %v", x.Cross(y), y.Cross(x))
	}
	if math.Abs(y.Angle()-math.Pi/2) > 1e-10 {
		t.Errorf("Angle failed: expected pi/2, got %v", y.Angle())
	}
}
