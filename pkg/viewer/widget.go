package viewer

import (
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gomeasure/internal/log"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// surfaceGap separates side-by-side surfaces as a fraction of their width
const surfaceGap = 0.5

// MeasureView is a fyne widget that shows a scene and runs a measurement
// session on it. Drag orbits, scroll zooms, hover previews and tap commits.
type MeasureView struct {
	widget.BaseWidget

	scene   *Scene
	camera  *Camera
	caster  *Caster
	session *measurement.Session
	overlay *measurement.Overlay
	raster  *Rasterizer
	painter *Painter
	logger  *slog.Logger

	raw        *canvas.Raster
	isDragging bool
	onChange   func(measurement.Snapshot)
}

// NewMeasureView creates the widget. faces may be nil.
func NewMeasureView(scene *Scene, style measurement.Style, faces *measurement.FaceMeasurer, opts ...measurement.Option) *MeasureView {
	camera := NewCamera(scene.Bounds())
	caster := &Caster{Scene: scene, Camera: camera}

	var text measurement.TextMeasurer = measurement.BasicMeasurer{}
	if faces != nil {
		text = faces
	}
	v := &MeasureView{
		scene:   scene,
		camera:  camera,
		caster:  caster,
		session: measurement.NewSession(caster, opts...),
		overlay: measurement.NewOverlay(style, text),
		raster:  NewRasterizer(),
		painter: &Painter{Faces: faces},
		logger:  log.WithComponent("viewer"),
	}
	v.ExtendBaseWidget(v)
	return v
}

// Session exposes the measurement session
func (v *MeasureView) Session() *measurement.Session {
	return v.session
}

// Camera exposes the orbit camera
func (v *MeasureView) Camera() *Camera {
	return v.camera
}

// OnChange is called after every state change, including hover, with a
// fresh snapshot
func (v *MeasureView) OnChange(fn func(measurement.Snapshot)) {
	v.onChange = fn
}

// SetMode switches the measurement tool
func (v *MeasureView) SetMode(m measurement.Mode) {
	v.session.SetMode(m)
	v.changed()
}

// Clear discards the current measurement
func (v *MeasureView) Clear() {
	v.session.Clear()
	v.changed()
}

// SetWireframe toggles triangle edges
func (v *MeasureView) SetWireframe(on bool) {
	v.raster.Wireframe = on
	v.Refresh()
}

// ResetCamera frames the whole scene again
func (v *MeasureView) ResetCamera() {
	v.camera.Frame(v.scene.Bounds())
	v.Refresh()
}

// AddSurface places a mesh next to the existing surfaces and reframes the
// camera
func (v *MeasureView) AddSurface(id measurement.SurfaceID, mesh *geometry.Mesh) {
	v.scene.Add(id, mesh, surfaceGap)
	v.camera.Frame(v.scene.Bounds())
	v.logger.Info("surface added", "surface", string(id), "triangles", mesh.TriangleCount())
	v.changed()
}

// RemoveSurfaces empties the scene and discards the measurement
func (v *MeasureView) RemoveSurfaces() {
	v.scene.Reset()
	v.session.Clear()
	v.logger.Info("surfaces removed")
	v.changed()
}

// Reload swaps the mesh of a surface. Measurements taken on the old geometry
// are discarded.
func (v *MeasureView) Reload(id measurement.SurfaceID, mesh *geometry.Mesh) {
	if !v.scene.Replace(id, mesh) {
		v.logger.Warn("reload for unknown surface", "surface", string(id))
		return
	}
	v.session.Clear()
	v.logger.Info("surface reloaded", "surface", string(id), "triangles", mesh.TriangleCount())
	v.changed()
}

func (v *MeasureView) changed() {
	if v.onChange != nil {
		v.onChange(v.session.Snapshot())
	}
	v.Refresh()
}

func (v *MeasureView) syncSize() {
	size := v.Size()
	v.caster.Width, v.caster.Height = float64(size.Width), float64(size.Height)
}

func toVector(p fyne.Position) geometry.Vector2 {
	return geometry.NewVector2(float64(p.X), float64(p.Y))
}

// MouseIn implements desktop.Hoverable
func (v *MeasureView) MouseIn(ev *desktop.MouseEvent) {
	v.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable
func (v *MeasureView) MouseMoved(ev *desktop.MouseEvent) {
	if v.isDragging {
		return
	}
	v.syncSize()
	v.session.PointerMove(toVector(ev.Position))
	v.changed()
}

// MouseOut implements desktop.Hoverable
func (v *MeasureView) MouseOut() {
	v.session.PointerLeave()
	v.changed()
}

// Tapped commits the point under the cursor
func (v *MeasureView) Tapped(ev *fyne.PointEvent) {
	if v.isDragging {
		return
	}
	v.syncSize()
	r := v.session.Click(toVector(ev.Position))
	if r.Outcome == measurement.Accepted {
		v.changed()
	}
}

// Dragged orbits the camera
func (v *MeasureView) Dragged(ev *fyne.DragEvent) {
	v.isDragging = true
	v.camera.Rotate(float64(ev.Dragged.DY)*0.01, -float64(ev.Dragged.DX)*0.01)
	v.Refresh()
}

// DragEnd implements fyne.Draggable
func (v *MeasureView) DragEnd() {
	v.isDragging = false
}

// Scrolled zooms the camera
func (v *MeasureView) Scrolled(ev *fyne.ScrollEvent) {
	v.camera.Zoom(-float64(ev.Scrolled.DY) * 0.001)
	v.Refresh()
}

// Cursor implements desktop.Cursorable. Fyne has no alias cursor, so Angle
// uses the crosshair too.
func (v *MeasureView) Cursor() desktop.Cursor {
	if v.session.Mode().Cursor() == measurement.CursorPointer {
		return desktop.PointerCursor
	}
	return desktop.CrosshairCursor
}

// Frame renders the scene and overlay at a pixel size
func (v *MeasureView) Frame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	v.raster.Draw(img, v.scene, v.camera)
	aspect := float64(w) / float64(h)
	cmds := v.overlay.Render(
		v.session.Snapshot(),
		v.camera.Projector(aspect),
		measurement.Viewport{Width: float64(w), Height: float64(h)},
	)
	v.painter.Paint(img, cmds)
	return img
}

// CreateRenderer implements fyne.Widget
func (v *MeasureView) CreateRenderer() fyne.WidgetRenderer {
	v.raw = canvas.NewRaster(func(w, h int) image.Image {
		return v.Frame(w, h)
	})
	return &measureViewRenderer{view: v}
}

type measureViewRenderer struct {
	view *MeasureView
}

func (r *measureViewRenderer) Layout(size fyne.Size) {
	r.view.raw.Resize(size)
	r.view.syncSize()
}

func (r *measureViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *measureViewRenderer) Refresh() {
	r.view.raw.Refresh()
}

func (r *measureViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raw}
}

func (r *measureViewRenderer) Destroy() {}
