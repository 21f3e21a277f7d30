package measurement

import (
	"fmt"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// SurfaceID identifies a pickable surface owned by the host
type SurfaceID string

// SurfaceIDs hands out ids derived from display names. A name that is
// already taken gets a " #n" suffix.
type SurfaceIDs struct {
	taken map[SurfaceID]bool
}

// Next returns an id for name that has not been handed out before
func (ids *SurfaceIDs) Next(name string) SurfaceID {
	if ids.taken == nil {
		ids.taken = make(map[SurfaceID]bool)
	}
	id := SurfaceID(name)
	for n := 2; ids.taken[id]; n++ {
		id = SurfaceID(fmt.Sprintf("%s #%d", name, n))
	}
	ids.taken[id] = true
	return id
}

// Reset forgets every id handed out so far
func (ids *SurfaceIDs) Reset() {
	clear(ids.taken)
}

// Hit is one ray intersection reported by the host
type Hit struct {
	Position  geometry.Vector3 // world space
	Normal    geometry.Vector3 // world space
	Surface   SurfaceID
	Mesh      *geometry.Mesh // local space, read-only
	Transform geometry.Transform
	Distance  float64
}

// RayCaster casts a ray from the camera through a screen point against the
// pickable surfaces and returns hits nearest first
type RayCaster interface {
	CastRay(screen geometry.Vector2) []Hit
}

// RayCasterFunc adapts a function to RayCaster
type RayCasterFunc func(screen geometry.Vector2) []Hit

func (f RayCasterFunc) CastRay(screen geometry.Vector2) []Hit {
	return f(screen)
}

// Candidate is a picked point ready for validation and commit
type Candidate struct {
	Point   geometry.Vector3
	Raw     geometry.Vector3
	Normal  geometry.Vector3
	Surface SurfaceID
	Snap    SnapKind
}

// Picker turns screen coordinates into candidates
type Picker struct {
	Caster  RayCaster
	Snapper Snapper
}

// Pick uses the nearest hit. Area candidates are snapped to the hit mesh.
func (p Picker) Pick(screen geometry.Vector2, mode Mode) (Candidate, bool) {
	if p.Caster == nil {
		return Candidate{}, false
	}
	hits := p.Caster.CastRay(screen)
	if len(hits) == 0 {
		return Candidate{}, false
	}
	hit := hits[0]
	c := Candidate{
		Point:   hit.Position,
		Raw:     hit.Position,
		Normal:  hit.Normal,
		Surface: hit.Surface,
	}
	if mode == ModeArea {
		c.Point, c.Snap = p.Snapper.Resolve(hit.Position, hit.Mesh, hit.Transform)
	}
	return c, true
}

// WantsPreview reports whether a mode with n committed points shows a
// preview point
func WantsPreview(mode Mode, n int) bool {
	switch mode {
	case ModeLength:
		return n < 2
	case ModeAngle:
		return n < 3
	default:
		return true
	}
}
