package app

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/watcher"
)

// CameraState holds the orbit camera
type CameraState struct {
	camera        rl.Camera3D
	target        rl.Vector3
	distance      float32
	angleX        float32
	angleY        float32
	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// surface is one loaded STL file placed in the world
type surface struct {
	id        measurement.SurfaceID
	path      string
	shape     *geometry.Mesh
	mesh      rl.Mesh
	transform geometry.Transform
	matrix    rl.Matrix
	color     rl.Color
	edges     [][2]geometry.Vector3
}

// SceneData holds every pickable surface and the shared material
type SceneData struct {
	surfaces []*surface
	material rl.Material
	center   rl.Vector3
	size     float32
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
}

// InteractionState tracks the pointer between frames
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
	isRotating   bool
	overUI       bool
	lastPointer  rl.Vector2
	lastCamera   rl.Camera3D
	previewDirty bool
	lastReject   measurement.RejectionEvent
	rejectUntil  time.Time
}

// reload is a parsed mesh waiting to be uploaded on the main thread
type reload struct {
	id   measurement.SurfaceID
	mesh *geometry.Mesh
	err  error
}

// FileWatchState connects the file watcher to the render loop
type FileWatchState struct {
	fileWatcher *watcher.FileWatcher
	reloads     chan reload
	lastReload  time.Time
	errors      chan error
	lastError   error
	lastErrorAt time.Time
}

// UIState holds fonts and panel layout
type UIState struct {
	font     rl.Font
	fontSize float32
}

// App is the raylib measurement viewer
type App struct {
	Camera      CameraState
	Scene       SceneData
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState

	cfg     config.Config
	session *measurement.Session
	overlay *measurement.Overlay
	logger  *slog.Logger
}
