package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Painter executes overlay commands on an RGBA image with anti-aliasing
type Painter struct {
	// Faces supplies label fonts. Nil falls back to the 7x13 bitmap face.
	Faces *measurement.FaceMeasurer
}

// Paint draws cmds over img in order
func (p *Painter) Paint(img *image.RGBA, cmds []measurement.Command) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, c := range cmds {
		switch c.Kind {
		case measurement.CmdFill:
			z.Reset(b.Dx(), b.Dy())
			polygon(z, c.Points)
			fill(z, img, c.Color)
		case measurement.CmdPolyline:
			z.Reset(b.Dx(), b.Dy())
			stroke(z, c.Points, c.Closed, c.Width)
			fill(z, img, c.Color)
		case measurement.CmdArc:
			z.Reset(b.Dx(), b.Dy())
			stroke(z, arcPoints(c.Center, c.Radius, c.Start, c.Sweep), false, c.Width)
			fill(z, img, c.Color)
		case measurement.CmdCircle:
			z.Reset(b.Dx(), b.Dy())
			polygon(z, circlePoints(c.Center, c.Radius))
			fill(z, img, c.Color)
		case measurement.CmdLabel:
			p.label(img, c)
		}
	}
}

func fill(z *vector.Rasterizer, img *image.RGBA, c color.RGBA) {
	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

func polygon(z *vector.Rasterizer, pts []geometry.Vector2) {
	if len(pts) < 3 {
		return
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		z.LineTo(float32(pt.X), float32(pt.Y))
	}
	z.ClosePath()
}

// stroke adds a quad per segment and a disc per joint. Every sub-path winds
// the same way so overlaps do not cancel.
func stroke(z *vector.Rasterizer, pts []geometry.Vector2, closed bool, width float64) {
	if len(pts) < 2 {
		return
	}
	if width <= 0 {
		width = 1
	}
	half := width / 2
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		d := b.Sub(a)
		l := d.Length()
		if l == 0 {
			continue
		}
		nrm := geometry.NewVector2(-d.Y/l, d.X/l).Mul(half)
		polygon(z, orient([]geometry.Vector2{a.Sub(nrm), b.Sub(nrm), b.Add(nrm), a.Add(nrm)}))
	}
	for i, pt := range pts {
		if !closed && (i == 0 || i == len(pts)-1) {
			continue
		}
		polygon(z, circlePoints(pt, half))
	}
}

// orient returns pts in counter-clockwise order (positive shoelace area)
func orient(pts []geometry.Vector2) []geometry.Vector2 {
	area := 0.0
	for i := range pts {
		area += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}

func circlePoints(c geometry.Vector2, r float64) []geometry.Vector2 {
	return arcPoints(c, r, 0, 2*math.Pi)[:segmentsFor(r, 2*math.Pi)]
}

func arcPoints(c geometry.Vector2, r, start, sweep float64) []geometry.Vector2 {
	n := segmentsFor(r, sweep)
	pts := make([]geometry.Vector2, n+1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		pts[i] = c.Add(geometry.NewVector2(math.Cos(a), math.Sin(a)).Mul(r))
	}
	return pts
}

func segmentsFor(r, sweep float64) int {
	n := int(math.Ceil(math.Abs(sweep) * r / 3))
	return max(n, 12)
}

func (p *Painter) label(img *image.RGBA, c measurement.Command) {
	l := c.Label
	box := image.Rect(
		int(math.Floor(l.Box.X)), int(math.Floor(l.Box.Y)),
		int(math.Ceil(l.Box.X+l.Box.Width)), int(math.Ceil(l.Box.Y+l.Box.Height)),
	)
	draw.Draw(img, box, image.NewUniform(c.Background), image.Point{}, draw.Over)
	border := image.NewUniform(c.Border)
	for _, edge := range []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+1),
		image.Rect(box.Min.X, box.Max.Y-1, box.Max.X, box.Max.Y),
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+1, box.Max.Y),
		image.Rect(box.Max.X-1, box.Min.Y, box.Max.X, box.Max.Y),
	} {
		draw.Draw(img, edge, border, image.Point{}, draw.Over)
	}

	face := p.face(l.Size)
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.Color),
		Face: face,
		Dot:  fixed.P(int(math.Round(l.TextAt.X)), int(math.Round(l.TextAt.Y))+face.Metrics().Ascent.Round()),
	}
	d.DrawString(l.Text)
}

func (p *Painter) face(size float64) font.Face {
	if p.Faces != nil {
		if f, err := p.Faces.Face(size); err == nil {
			return f
		}
	}
	return basicfont.Face7x13
}
