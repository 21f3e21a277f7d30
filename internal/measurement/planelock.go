package measurement

import (
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// DefaultPlaneEpsilon is the largest plane offset an area point may have
const DefaultPlaneEpsilon = 1e-3

// PlaneConstraint is the plane an area polygon is locked to
type PlaneConstraint struct {
	Normal  geometry.Vector3
	Anchor  geometry.Vector3
	Surface SurfaceID
}

// PlaneLock keeps area picks on the plane of the first pick. It is Unlocked
// until Lock succeeds and returns to Unlocked on Unlock.
type PlaneLock struct {
	Epsilon float64
	// SameSurface additionally rejects picks on other surfaces
	SameSurface bool

	plane  geometry.Plane
	locked bool
	owner  SurfaceID
}

// NewPlaneLock returns an unlocked lock. A non-positive epsilon means the
// default.
func NewPlaneLock(epsilon float64) PlaneLock {
	if epsilon <= 0 {
		epsilon = DefaultPlaneEpsilon
	}
	return PlaneLock{Epsilon: epsilon}
}

// Locked reports whether a plane is in force
func (l *PlaneLock) Locked() bool {
	return l.locked
}

// Lock captures the plane through anchor with the given surface normal.
// A zero or non-finite normal leaves the lock unchanged.
func (l *PlaneLock) Lock(normal, anchor geometry.Vector3, surface SurfaceID) bool {
	plane, ok := geometry.NewPlane(normal, anchor)
	if !ok {
		return false
	}
	l.plane, l.locked, l.owner = plane, true, surface
	return true
}

// Unlock drops the constraint
func (l *PlaneLock) Unlock() {
	l.plane, l.locked, l.owner = geometry.Plane{}, false, ""
}

// Offset returns normal · (p − anchor), or 0 when unlocked
func (l *PlaneLock) Offset(p geometry.Vector3) float64 {
	if !l.locked {
		return 0
	}
	return l.plane.SignedDistance(p)
}

// Check tests a candidate against the lock. Everything passes while
// unlocked.
func (l *PlaneLock) Check(p geometry.Vector3, surface SurfaceID) Result {
	if !l.locked {
		return accepted(p)
	}
	if l.SameSurface && surface != l.owner {
		return rejected(ReasonOtherSurface, p)
	}
	offset := l.plane.SignedDistance(p)
	if math.Abs(offset) > l.epsilon() || math.IsNaN(offset) {
		r := rejected(ReasonOffPlane, p)
		r.Offset = offset
		return r
	}
	return accepted(p)
}

// Constraint returns the active plane, or nil when unlocked
func (l *PlaneLock) Constraint() *PlaneConstraint {
	if !l.locked {
		return nil
	}
	return &PlaneConstraint{Normal: l.plane.Normal, Anchor: l.plane.Anchor, Surface: l.owner}
}

func (l *PlaneLock) epsilon() float64 {
	if l.Epsilon <= 0 {
		return DefaultPlaneEpsilon
	}
	return l.Epsilon
}
