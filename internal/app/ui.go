package app

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/version"
)

const (
	toolbarX      = 10
	toolbarY      = 10
	buttonWidth   = 80
	buttonHeight  = 28
	buttonSpacing = 6
	panelWidth    = 240
)

var (
	colorPanel    = rl.NewColor(20, 24, 32, 220)
	colorAccent   = rl.NewColor(255, 200, 0, 255)
	colorRejected = rl.NewColor(255, 110, 90, 255)
)

// setupStyle themes raygui to match the viewport
func (app *App) setupStyle() {
	gui.SetFont(app.UI.font)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 16)
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(40, 44, 56, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(60, 66, 84, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.LightGray))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.Black))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
}

func toolbarButton(i int) rl.Rectangle {
	return rl.Rectangle{
		X:      toolbarX + float32(i)*(buttonWidth+buttonSpacing),
		Y:      toolbarY,
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// toolbarBounds covers the mode buttons and Clear
func toolbarBounds() rl.Rectangle {
	n := len(measurement.Modes) + 1
	return rl.Rectangle{
		X:      toolbarX,
		Y:      toolbarY,
		Width:  float32(n)*(buttonWidth+buttonSpacing) - buttonSpacing,
		Height: buttonHeight,
	}
}

func panelBounds() rl.Rectangle {
	return rl.Rectangle{
		X:      float32(rl.GetScreenWidth()) - panelWidth - 10,
		Y:      10,
		Width:  panelWidth,
		Height: 190,
	}
}

// pointerOverUI reports whether p is over a toolbar or panel
func (app *App) pointerOverUI(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, toolbarBounds()) || rl.CheckCollisionPointRec(p, panelBounds())
}

// drawToolbar draws the mode buttons and Clear. The active mode is shown
// pressed.
func (app *App) drawToolbar() {
	active := app.session.Mode()
	for i, m := range measurement.Modes {
		bounds := toolbarButton(i)
		if m == active {
			rl.DrawRectangleRec(bounds, colorAccent)
			label := m.Title()
			size := rl.MeasureTextEx(app.UI.font, label, 16, labelSpacing)
			rl.DrawTextEx(app.UI.font, label, rl.Vector2{
				X: bounds.X + (bounds.Width-size.X)/2,
				Y: bounds.Y + (bounds.Height-size.Y)/2,
			}, 16, labelSpacing, rl.Black)
			continue
		}
		if gui.Button(bounds, m.Title()) {
			app.setMode(m)
		}
	}
	if gui.Button(toolbarButton(len(measurement.Modes)), "Clear") {
		app.clear()
	}
}

// drawPanel shows the mode, point count and live reading
func (app *App) drawPanel() {
	b := panelBounds()
	rl.DrawRectangleRec(b, colorPanel)
	rl.DrawRectangleLinesEx(b, 1, rl.NewColor(90, 90, 90, 255))

	snap := app.session.Snapshot()
	x := b.X + 12
	y := b.Y + 10
	lineHeight := float32(22)
	text := func(s string, size float32, c rl.Color) {
		rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, labelSpacing, c)
		y += lineHeight
	}

	text(snap.Mode.Title(), 20, colorAccent)
	points := fmt.Sprintf("Points: %d", len(snap.Points))
	if c := snap.Mode.Capacity(); c != measurement.Unbounded {
		points = fmt.Sprintf("Points: %d / %d", len(snap.Points), c)
	}
	text(points, 16, rl.White)

	live := snap.LiveReading()
	text(live.String(), 24, rl.White)
	y += 6

	if snap.Plane != nil {
		n := snap.Plane.Normal
		text(fmt.Sprintf("Plane n: %.2f %.2f %.2f", n.X, n.Y, n.Z), 14, rl.LightGray)
	} else {
		y += lineHeight
	}

	if time.Now().Before(app.Interaction.rejectUntil) {
		ev := app.Interaction.lastReject
		text("Rejected: "+ev.Result.Reason.String(), 14, colorRejected)
	} else if time.Since(app.FileWatch.lastErrorAt) < 5*time.Second {
		text("Watch error: "+app.FileWatch.lastError.Error(), 14, colorRejected)
	} else if time.Since(app.FileWatch.lastReload) < 3*time.Second {
		text("Model reloaded", 14, rl.Green)
	} else {
		y += lineHeight
	}
	text(version.GetVersion(), 12, rl.Gray)
}

// drawHelp shows the shortcuts along the bottom edge
func (app *App) drawHelp() {
	help := "L/G/A: mode  C/Esc: clear  drag: orbit  shift-drag: pan  wheel: zoom  Home/T/B/1/3: views  W: wireframe  F: fill"
	y := float32(rl.GetScreenHeight()) - 24
	rl.DrawTextEx(app.UI.font, help, rl.Vector2{X: 10, Y: y}, 14, labelSpacing, rl.LightGray)
}

// drawUI draws every 2D element over the viewport
func (app *App) drawUI() {
	app.drawToolbar()
	app.drawPanel()
	app.drawHelp()
}
