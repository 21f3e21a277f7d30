package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// clickThreshold is how far the pointer may travel between press and release
// for the gesture to count as a click
const clickThreshold = 5.0

// isClick reports whether a press/release pair is a click rather than a drag
func isClick(down, up rl.Vector2) bool {
	return rl.Vector2Distance(down, up) < clickThreshold
}

func toGeom(v rl.Vector2) geometry.Vector2 {
	return geometry.NewVector2(float64(v.X), float64(v.Y))
}

var modeKeys = map[int32]measurement.Mode{
	rl.KeyL: measurement.ModeLength,
	rl.KeyG: measurement.ModeAngle,
	rl.KeyA: measurement.ModeArea,
}

// handleKeys processes keyboard shortcuts
func (app *App) handleKeys() {
	for key, mode := range modeKeys {
		if rl.IsKeyPressed(key) {
			app.setMode(mode)
		}
	}
	if rl.IsKeyPressed(rl.KeyC) || rl.IsKeyPressed(rl.KeyEscape) {
		app.clear()
	}

	// Camera view presets
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		app.setCameraBottomView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraSideView()
	}

	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
}

// handleInput processes pointer input. The toolbar takes precedence over the
// viewport.
func (app *App) handleInput() {
	app.handleKeys()

	in := &app.Interaction
	mouse := rl.GetMousePosition()
	in.overUI = app.pointerOverUI(mouse)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !in.overUI {
		in.mouseDownPos = mouse
		in.mouseMoved = false
		in.isRotating = true
		// Pan if Shift is pressed
		in.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	}

	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && in.isRotating) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if !isClick(in.mouseDownPos, mouse) {
			in.mouseMoved = true
		}
		if delta.X != 0 || delta.Y != 0 {
			if in.isPanning || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
				app.doPan(delta)
			} else if in.mouseMoved {
				app.rotate(delta)
			}
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && in.isRotating {
		if !in.mouseMoved && !in.isPanning && isClick(in.mouseDownPos, mouse) {
			app.session.Click(toGeom(mouse))
		}
		in.isRotating = false
		in.isPanning = false
	}

	if !in.overUI {
		app.zoom(rl.GetMouseWheelMove())
	}

	// Hover preview. Skipped while dragging since the camera is moving.
	switch {
	case in.overUI:
		app.session.PointerLeave()
	case in.isRotating && in.mouseMoved:
	case mouse != in.lastPointer || app.Camera.camera != in.lastCamera || in.previewDirty:
		app.session.PointerMove(toGeom(mouse))
		in.previewDirty = false
	}
	in.lastPointer = mouse
	in.lastCamera = app.Camera.camera

	app.updateCursor()
}

// updateCursor shows the cursor of the active mode over the viewport. raylib
// has no alias cursor, so Angle uses resize-all.
func (app *App) updateCursor() {
	if app.Interaction.overUI {
		rl.SetMouseCursor(rl.MouseCursorDefault)
		return
	}
	switch app.session.Mode().Cursor() {
	case measurement.CursorAlias:
		rl.SetMouseCursor(rl.MouseCursorResizeAll)
	case measurement.CursorPointer:
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	default:
		rl.SetMouseCursor(rl.MouseCursorCrosshair)
	}
}

// setMode switches tools. Selecting the active mode again starts over.
func (app *App) setMode(m measurement.Mode) {
	app.session.SetMode(m)
	app.Interaction.previewDirty = true
	app.logger.Info("mode changed", "mode", m.String())
}

func (app *App) clear() {
	app.session.Clear()
	app.Interaction.previewDirty = true
	app.logger.Debug("measurement cleared")
}
