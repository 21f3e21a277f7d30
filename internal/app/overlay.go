package app

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// labelSpacing is the glyph spacing used for both measuring and drawing
const labelSpacing = 1

// fontMeasurer sizes label text with the raylib font that draws it
type fontMeasurer struct {
	font rl.Font
}

func (m fontMeasurer) MeasureText(text string, size float64) (float64, float64) {
	v := rl.MeasureTextEx(m.font, text, float32(size), labelSpacing)
	return float64(v.X), float64(v.Y)
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func vec2(p geometry.Vector2) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}

// drawCommands executes overlay commands in order
func (app *App) drawCommands(cmds []measurement.Command) {
	for _, c := range cmds {
		col := rlColor(c.Color)
		switch c.Kind {
		case measurement.CmdFill:
			drawPolygon(c.Points, col)
		case measurement.CmdPolyline:
			drawPolyline(c.Points, c.Closed, float32(c.Width), col)
		case measurement.CmdArc:
			drawArc(c, col)
		case measurement.CmdCircle:
			rl.DrawCircleV(vec2(c.Center), float32(c.Radius), col)
		case measurement.CmdLabel:
			app.drawLabel(c)
		}
	}
}

// drawPolygon fans from the centroid. raylib culls clockwise triangles, so
// the fan is emitted in screen counter-clockwise order.
func drawPolygon(pts []geometry.Vector2, col rl.Color) {
	if len(pts) < 3 {
		return
	}
	var center geometry.Vector2
	for _, p := range pts {
		center = center.Add(p)
	}
	center = center.Mul(1 / float64(len(pts)))

	fan := make([]rl.Vector2, 0, len(pts)+2)
	fan = append(fan, vec2(center))
	for _, p := range screenCCW(pts) {
		fan = append(fan, vec2(p))
	}
	fan = append(fan, fan[1])
	rl.DrawTriangleFan(fan, col)
}

// screenCCW returns pts ordered counter-clockwise as seen on a y-down screen,
// which is a negative shoelace sum in pixel coordinates
func screenCCW(pts []geometry.Vector2) []geometry.Vector2 {
	area := 0.0
	for i := range pts {
		area += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	if area <= 0 {
		return pts
	}
	out := make([]geometry.Vector2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func drawPolyline(pts []geometry.Vector2, closed bool, width float32, col rl.Color) {
	if len(pts) < 2 {
		return
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		rl.DrawLineEx(vec2(pts[i]), vec2(pts[(i+1)%len(pts)]), width, col)
	}
	// round joints
	for i, p := range pts {
		if !closed && (i == 0 || i == len(pts)-1) {
			continue
		}
		rl.DrawCircleV(vec2(p), width/2, col)
	}
}

func drawArc(c measurement.Command, col rl.Color) {
	half := float32(c.Width) / 2
	r := float32(c.Radius)
	start := float32(c.Start * 180 / math.Pi)
	end := float32((c.Start + c.Sweep) * 180 / math.Pi)
	segments := int32(math.Max(12, math.Abs(c.Sweep)*c.Radius/3))
	rl.DrawRing(vec2(c.Center), r-half, r+half, start, end, segments, col)
}

func (app *App) drawLabel(c measurement.Command) {
	l := c.Label
	box := rl.Rectangle{
		X:      float32(l.Box.X),
		Y:      float32(l.Box.Y),
		Width:  float32(l.Box.Width),
		Height: float32(l.Box.Height),
	}
	rl.DrawRectangleRec(box, rlColor(c.Background))
	rl.DrawRectangleLinesEx(box, 1, rlColor(c.Border))
	rl.DrawTextEx(app.UI.font, l.Text, vec2(l.TextAt), float32(l.Size), labelSpacing, rlColor(c.Color))
}
