package viewer

import (
	"image/color"
	"slices"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Surface is one pickable mesh placed in the world
type Surface struct {
	ID        measurement.SurfaceID
	Mesh      *geometry.Mesh
	Transform geometry.Transform
	Color     color.RGBA
}

// Bounds returns the world-space bounding box
func (s *Surface) Bounds() geometry.BoundingBox {
	b := geometry.NewBoundingBox()
	for _, p := range s.Mesh.Positions {
		b.Extend(s.Transform.Point(p))
	}
	return b
}

// Scene is the set of pickable surfaces
type Scene struct {
	Surfaces []*Surface
}

var palette = []color.RGBA{
	{R: 150, G: 160, B: 175, A: 255},
	{R: 175, G: 155, B: 130, A: 255},
	{R: 130, G: 170, B: 140, A: 255},
}

// Add places mesh to the right of the existing surfaces, separated by gap
// times the mesh width
func (s *Scene) Add(id measurement.SurfaceID, mesh *geometry.Mesh, gap float64) *Surface {
	local := mesh.Bounds()
	offset := geometry.Vector3{}
	if len(s.Surfaces) > 0 {
		world := s.Bounds()
		spacing := local.Size().X * gap
		offset = geometry.NewVector3(world.Max.X+spacing-local.Min.X, 0, 0)
	}
	surface := &Surface{
		ID:        id,
		Mesh:      mesh,
		Transform: geometry.Translation(offset),
		Color:     palette[len(s.Surfaces)%len(palette)],
	}
	s.Surfaces = append(s.Surfaces, surface)
	return surface
}

// Replace swaps the mesh of the surface with id, keeping its placement
func (s *Scene) Replace(id measurement.SurfaceID, mesh *geometry.Mesh) bool {
	for _, surface := range s.Surfaces {
		if surface.ID == id {
			surface.Mesh = mesh
			return true
		}
	}
	return false
}

// Reset removes every surface
func (s *Scene) Reset() {
	s.Surfaces = nil
}

// Bounds returns the world-space bounds of all surfaces
func (s *Scene) Bounds() geometry.BoundingBox {
	b := geometry.NewBoundingBox()
	for _, surface := range s.Surfaces {
		b = b.Union(surface.Bounds())
	}
	return b
}

// Intersect returns every surface hit along ray, nearest first
func (s *Scene) Intersect(ray geometry.Ray) []measurement.Hit {
	var hits []measurement.Hit
	for _, surface := range s.Surfaces {
		h, ok := ray.IntersectMesh(surface.Mesh, surface.Transform)
		if !ok {
			continue
		}
		hits = append(hits, measurement.Hit{
			Position:  h.Point,
			Normal:    h.Normal,
			Surface:   surface.ID,
			Mesh:      surface.Mesh,
			Transform: surface.Transform,
			Distance:  h.Distance,
		})
	}
	slices.SortFunc(hits, func(a, b measurement.Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})
	return hits
}

// Caster casts rays from a camera into a scene for a widget of the given size
type Caster struct {
	Scene  *Scene
	Camera *Camera
	Width  float64
	Height float64
}

// CastRay implements measurement.RayCaster for widget-space positions
func (c *Caster) CastRay(screen geometry.Vector2) []measurement.Hit {
	if c.Width <= 0 || c.Height <= 0 {
		return nil
	}
	ray := c.Camera.Ray(ToNDC(screen, c.Width, c.Height), c.Width/c.Height)
	return c.Scene.Intersect(ray)
}
