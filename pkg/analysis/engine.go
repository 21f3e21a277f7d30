package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Fixed conversion factors from world units (meters) to display units
const (
	MetersToFeet             = 39.3701 / 12
	SquareMetersToSquareFeet = 1550.0031 / 144
)

// Quantity is the kind of value a measurement produces
type Quantity int

const (
	QuantityLength Quantity = iota
	QuantityAngle
	QuantityArea
)

// Unit returns the display unit suffix
func (q Quantity) Unit() string {
	switch q {
	case QuantityAngle:
		return "°"
	case QuantityArea:
		return " ft²"
	default:
		return " ft"
	}
}

// MinPoints is the number of points needed before the quantity is defined
func (q Quantity) MinPoints() int {
	if q == QuantityLength {
		return 2
	}
	return 3
}

// Distance returns |b − a| in world units
func Distance(a, b geometry.Vector3) float64 {
	return a.Distance(b)
}

// DistanceFeet measures the first two points in feet
func DistanceFeet(points []geometry.Vector3) (float64, bool) {
	if len(points) < 2 {
		return 0, false
	}
	return Distance(points[0], points[1]) * MetersToFeet, true
}

// Angle returns the angle ABC in degrees. B is the vertex. It is undefined
// when either arm has zero length.
func Angle(a, b, c geometry.Vector3) (float64, bool) {
	ba := a.Sub(b)
	bc := c.Sub(b)
	denom := ba.Length() * bc.Length()
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return 0, false
	}
	cos := math.Max(-1, math.Min(1, ba.Dot(bc)/denom))
	deg := math.Acos(cos) * 180 / math.Pi
	if math.IsNaN(deg) {
		return 0, false
	}
	return deg, true
}

// AngleDegrees measures the first three points
func AngleDegrees(points []geometry.Vector3) (float64, bool) {
	if len(points) < 3 {
		return 0, false
	}
	return Angle(points[0], points[1], points[2])
}

// NewellVector accumulates the unnormalized polygon normal. Its length is
// twice the polygon area.
func NewellVector(points []geometry.Vector3) geometry.Vector3 {
	var n geometry.Vector3
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// NewellNormal returns the unit normal of a polygon, or false when the
// polygon has no area
func NewellNormal(points []geometry.Vector3) (geometry.Vector3, bool) {
	if len(points) < 3 {
		return geometry.Vector3{}, false
	}
	n := NewellVector(points).Normalize()
	return n, !n.IsZero()
}

// PolygonArea returns the area of a polygon embedded in 3D, in square world
// units
func PolygonArea(points []geometry.Vector3) (float64, bool) {
	if len(points) < 3 {
		return 0, false
	}
	return NewellVector(points).Length() / 2, true
}

// AreaSquareFeet measures the polygon in square feet
func AreaSquareFeet(points []geometry.Vector3) (float64, bool) {
	area, ok := PolygonArea(points)
	if !ok {
		return 0, false
	}
	return area * SquareMetersToSquareFeet, true
}

// Reading is a derived measurement value in display units
type Reading struct {
	Quantity Quantity
	Value    float64
	Valid    bool
}

// Measure derives the reading for a quantity from an ordered point set
func Measure(q Quantity, points []geometry.Vector3) Reading {
	var (
		v  float64
		ok bool
	)
	switch q {
	case QuantityLength:
		v, ok = DistanceFeet(points)
	case QuantityAngle:
		v, ok = AngleDegrees(points)
	case QuantityArea:
		v, ok = AreaSquareFeet(points)
	}
	return Reading{Quantity: q, Value: v, Valid: ok}
}

// String formats the reading with two decimals, or a dash when undefined
func (r Reading) String() string {
	if !r.Valid {
		return "—"
	}
	return fmt.Sprintf("%.2f%s", r.Value, r.Quantity.Unit())
}
