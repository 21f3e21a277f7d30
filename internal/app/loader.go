package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/internal/log"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/watcher"
)

// surfaceGap is the spacing between side-by-side surfaces as a fraction of
// the added surface's width
const surfaceGap = 0.5

var palette = []rl.Color{
	rl.NewColor(100, 120, 200, 255),
	rl.NewColor(200, 150, 100, 255),
	rl.NewColor(110, 180, 130, 255),
}

// loadMesh parses an STL file into indexed geometry
func loadMesh(filePath string) (*geometry.Mesh, error) {
	if ext := strings.ToLower(filepath.Ext(filePath)); ext != ".stl" {
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl)", ext)
	}
	model, err := stl.Parse(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse STL file: %w", err)
	}
	mesh := model.Mesh()
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("%s contains no triangles", filePath)
	}
	return mesh, nil
}

// layoutOffset places local to the right of world with a gap
func layoutOffset(world, local geometry.BoundingBox) geometry.Vector3 {
	if world.Empty() {
		return geometry.Vector3{}
	}
	spacing := local.Size().X * surfaceGap
	return geometry.NewVector3(world.Max.X+spacing-local.Min.X, 0, 0)
}

// loadSurfaces parses every file and lays the results out along +X. The GPU
// upload happens later in uploadSurfaces.
func loadSurfaces(files []string) ([]*surface, error) {
	logger := log.WithComponent("loader")
	world := geometry.NewBoundingBox()
	surfaces := make([]*surface, 0, len(files))
	var ids measurement.SurfaceIDs

	for i, f := range files {
		start := time.Now()
		mesh, err := loadMesh(f)
		if err != nil {
			return nil, err
		}
		local := mesh.Bounds()
		xf := geometry.Translation(layoutOffset(world, local))
		s := &surface{
			id:        ids.Next(filepath.Base(f)),
			path:      f,
			shape:     mesh,
			transform: xf,
			matrix:    toMatrix(xf),
			color:     palette[i%len(palette)],
			edges:     uniqueEdges(mesh, xf),
		}
		world = world.Union(boundsOf(s))
		surfaces = append(surfaces, s)
		logger.Info("model loaded",
			"file", f,
			"triangles", mesh.TriangleCount(),
			"elapsed", time.Since(start).Round(time.Millisecond))
	}
	return surfaces, nil
}

// boundsOf returns the world-space bounds of a surface
func boundsOf(s *surface) geometry.BoundingBox {
	b := geometry.NewBoundingBox()
	for _, p := range s.shape.Positions {
		b.Extend(s.transform.Point(p))
	}
	return b
}

// updateSceneBounds recomputes the center and size used for framing
func (app *App) updateSceneBounds() {
	world := geometry.NewBoundingBox()
	for _, s := range app.Scene.surfaces {
		world = world.Union(boundsOf(s))
	}
	if world.Empty() {
		return
	}
	app.Scene.center = toRL(world.Center())
	app.Scene.size = float32(world.MaxDimension())
}

// setupFileWatcher reloads a surface whenever its file changes. Parsing runs
// on the watcher goroutine and the result is handed to the render loop.
func (app *App) setupFileWatcher(ctx context.Context) error {
	logger := log.WithComponent("watcher")
	fw, err := watcher.NewFileWatcher(app.cfg.Viewer.Debounce(), logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	app.FileWatch.reloads = make(chan reload, len(app.Scene.surfaces))
	app.FileWatch.errors = make(chan error, 1)
	fw.OnError(func(err error) {
		select {
		case app.FileWatch.errors <- err:
		default:
		}
	})
	for _, s := range app.Scene.surfaces {
		id := s.id
		callback := func(changedFile string) {
			mesh, err := loadMesh(changedFile)
			select {
			case app.FileWatch.reloads <- reload{id: id, mesh: mesh, err: err}:
			case <-ctx.Done():
			}
		}
		if err := fw.Watch([]string{s.path}, callback); err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch files: %w", err)
		}
	}

	fw.Start(ctx)
	app.FileWatch.fileWatcher = fw
	return nil
}

// applyReloads swaps in freshly parsed meshes. Must run on the main thread.
func (app *App) applyReloads() {
	for {
		select {
		case r := <-app.FileWatch.reloads:
			app.applyReload(r)
		case err := <-app.FileWatch.errors:
			app.FileWatch.lastError = err
			app.FileWatch.lastErrorAt = time.Now()
		default:
			return
		}
	}
}

func (app *App) applyReload(r reload) {
	logger := log.WithComponent("loader")
	if r.err != nil {
		logger.Error("reload failed", "surface", string(r.id), "err", r.err)
		return
	}
	for _, s := range app.Scene.surfaces {
		if s.id != r.id {
			continue
		}
		old := s.mesh
		s.shape = r.mesh
		s.edges = uniqueEdges(r.mesh, s.transform)
		s.mesh = meshToRaylib(r.mesh, s.color)
		rl.UnloadMesh(&old)

		// points taken on the old geometry no longer lie on the surface
		app.session.Clear()
		app.Interaction.previewDirty = true
		app.FileWatch.lastReload = time.Now()
		app.updateSceneBounds()
		logger.Info("model reloaded", "surface", string(r.id), "triangles", r.mesh.TriangleCount())
		return
	}
	logger.Warn("reload for unknown surface", "surface", string(r.id))
}

// uploadSurfaces creates the GPU meshes. Must run after InitWindow.
func (app *App) uploadSurfaces() {
	for _, s := range app.Scene.surfaces {
		s.mesh = meshToRaylib(s.shape, s.color)
	}
}

// unloadSurfaces releases the GPU meshes
func (app *App) unloadSurfaces() {
	for _, s := range app.Scene.surfaces {
		rl.UnloadMesh(&s.mesh)
	}
}
