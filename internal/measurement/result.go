package measurement

import "github.com/philipparndt/gomeasure/pkg/geometry"

// Outcome tags what happened to a pointer event
type Outcome int

const (
	Accepted Outcome = iota
	Rejected
	NoHit
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "no-hit"
	}
}

// Reason explains a rejection
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonCapacity: the mode's buffer is full
	ReasonCapacity
	// ReasonOffPlane: the candidate is farther than epsilon from the locked plane
	ReasonOffPlane
	// ReasonDegenerateNormal: the first area pick has no usable surface normal
	ReasonDegenerateNormal
	// ReasonOtherSurface: the candidate lies on a different surface than the first area pick
	ReasonOtherSurface
	// ReasonGated: the mode does not take previews in its current state
	ReasonGated
)

func (r Reason) String() string {
	switch r {
	case ReasonCapacity:
		return "capacity exceeded"
	case ReasonOffPlane:
		return "off plane"
	case ReasonDegenerateNormal:
		return "degenerate normal"
	case ReasonOtherSurface:
		return "other surface"
	case ReasonGated:
		return "gated"
	default:
		return "none"
	}
}

// Result is the tagged outcome of a preview or commit attempt
type Result struct {
	Outcome Outcome
	Reason  Reason
	// Point is the candidate after snapping. Unset for NoHit.
	Point geometry.Vector3
	// Snap records how the candidate was adjusted
	Snap SnapKind
	// Offset is the signed plane distance for ReasonOffPlane
	Offset float64
}

func accepted(p geometry.Vector3) Result {
	return Result{Outcome: Accepted, Point: p}
}

func rejected(reason Reason, p geometry.Vector3) Result {
	return Result{Outcome: Rejected, Reason: reason, Point: p}
}

// Accepted reports whether the event mutated state as requested
func (r Result) Accepted() bool {
	return r.Outcome == Accepted
}
