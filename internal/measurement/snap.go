package measurement

import (
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// DefaultSnapThreshold is the snap radius in world units
const DefaultSnapThreshold = 0.05

// SnapKind records how a candidate was adjusted
type SnapKind int

const (
	SnapNone SnapKind = iota
	SnapVertex
	SnapEdge
)

func (k SnapKind) String() string {
	switch k {
	case SnapVertex:
		return "vertex"
	case SnapEdge:
		return "edge"
	default:
		return "none"
	}
}

// Snapper pulls raw hits onto nearby mesh vertices or edges
type Snapper struct {
	Threshold float64
}

// NewSnapper returns a snapper. A negative threshold means the default;
// zero disables snapping.
func NewSnapper(threshold float64) Snapper {
	if threshold < 0 {
		threshold = DefaultSnapThreshold
	}
	return Snapper{Threshold: threshold}
}

// Resolve returns the nearest world-space vertex within the threshold.
// Failing that it returns the nearest point on a triangle edge within the
// threshold, and otherwise the raw position.
func (s Snapper) Resolve(raw geometry.Vector3, mesh *geometry.Mesh, xf geometry.Transform) (geometry.Vector3, SnapKind) {
	if s.Threshold <= 0 || mesh.TriangleCount() == 0 {
		return raw, SnapNone
	}

	world := make([]geometry.Vector3, len(mesh.Positions))
	for i, p := range mesh.Positions {
		world[i] = xf.Point(p)
	}

	best := math.Inf(1)
	var snapped geometry.Vector3
	for _, v := range world {
		if d := raw.Distance(v); d <= s.Threshold && d < best {
			best, snapped = d, v
		}
	}
	if !math.IsInf(best, 1) {
		return snapped, SnapVertex
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		corners := triangleCorners(mesh, world, i)
		for k := 0; k < 3; k++ {
			q := geometry.ClosestPointOnSegment(raw, corners[k], corners[(k+1)%3])
			if d := raw.Distance(q); d <= s.Threshold && d < best {
				best, snapped = d, q
			}
		}
	}
	if !math.IsInf(best, 1) {
		return snapped, SnapEdge
	}
	return raw, SnapNone
}

func triangleCorners(m *geometry.Mesh, world []geometry.Vector3, i int) [3]geometry.Vector3 {
	if len(m.Indices) > 0 {
		return [3]geometry.Vector3{world[m.Indices[i*3]], world[m.Indices[i*3+1]], world[m.Indices[i*3+2]]}
	}
	return [3]geometry.Vector3{world[i*3], world[i*3+1], world[i*3+2]}
}
