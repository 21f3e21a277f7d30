package app

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// CastRay implements measurement.RayCaster against the uploaded meshes
func (app *App) CastRay(screen geometry.Vector2) []measurement.Hit {
	pos := rl.Vector2{X: float32(screen.X), Y: float32(screen.Y)}
	ray := rl.GetScreenToWorldRay(pos, app.Camera.camera)

	var hits []measurement.Hit
	for _, s := range app.Scene.surfaces {
		c := rl.GetRayCollisionMesh(ray, s.mesh, s.matrix)
		if !c.Hit {
			continue
		}
		hits = append(hits, measurement.Hit{
			Position:  fromRL(c.Point),
			Normal:    fromRL(c.Normal).Normalize(),
			Surface:   s.id,
			Mesh:      s.shape,
			Transform: s.transform,
			Distance:  float64(c.Distance),
		})
	}
	slices.SortFunc(hits, func(a, b measurement.Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// projector maps world points to NDC through the current raylib camera.
// Points at or behind the eye plane are reported as not visible.
func (app *App) projector(width, height int32) measurement.Projector {
	cam := app.Camera.camera
	forward := rl.Vector3Normalize(rl.Vector3Subtract(cam.Target, cam.Position))
	w, h := float64(width), float64(height)

	return measurement.ProjectorFunc(func(p geometry.Vector3) (geometry.Vector2, bool) {
		v := toRL(p)
		if rl.Vector3DotProduct(rl.Vector3Subtract(v, cam.Position), forward) <= 0 {
			return geometry.Vector2{}, false
		}
		px := rl.GetWorldToScreenEx(v, cam, width, height)
		return geometry.NewVector2(2*float64(px.X)/w-1, 1-2*float64(px.Y)/h), true
	})
}
