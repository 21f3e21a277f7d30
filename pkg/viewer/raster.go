package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Rasterizer draws flat-shaded surfaces into an RGBA image with a depth
// buffer
type Rasterizer struct {
	Background color.RGBA
	// Light points towards the light source in world space
	Light     geometry.Vector3
	Wireframe bool

	zbuffer []float64
}

// NewRasterizer returns a rasterizer with a dark background and a light over
// the viewer's right shoulder
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		Background: color.RGBA{R: 30, G: 32, B: 38, A: 255},
		Light:      geometry.NewVector3(0.4, 0.7, 1).Normalize(),
	}
}

// Draw clears img and renders every surface of scene through cam
func (r *Rasterizer) Draw(img *image.RGBA, scene *Scene, cam *Camera) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r.Background.R, r.Background.G, r.Background.B, r.Background.A
	}
	if w == 0 || h == 0 || scene == nil {
		return
	}
	if n := w * h; len(r.zbuffer) != n {
		r.zbuffer = make([]float64, n)
	}
	for i := range r.zbuffer {
		r.zbuffer[i] = math.Inf(1)
	}

	vp := cam.ViewProjection(float64(w) / float64(h))
	viewport := measurement.Viewport{Width: float64(w), Height: float64(h)}

	for _, s := range scene.Surfaces {
		for i := 0; i < s.Mesh.TriangleCount(); i++ {
			tri := s.Mesh.Triangle(i)
			var sx, sy, sz [3]float64
			visible := true
			for k, v := range tri.Vertices() {
				ndc, depth, ok := project(vp, s.Transform.Point(v))
				if !ok {
					visible = false
					break
				}
				px := viewport.ToPixels(ndc)
				sx[k], sy[k], sz[k] = px.X, px.Y, depth
			}
			if !visible {
				continue
			}

			col := shade(s.Color, s.Transform.Normal(tri.FacetNormal()), r.Light)
			fillTriangleWithDepth(img, r.zbuffer, sx[0], sy[0], sz[0], sx[1], sy[1], sz[1], sx[2], sy[2], sz[2], col)
			if r.Wireframe {
				edge := scaleColor(col, 0.6)
				for k := 0; k < 3; k++ {
					n := (k + 1) % 3
					drawLine(img, int(sx[k]), int(sy[k]), int(sx[n]), int(sy[n]), edge)
				}
			}
		}
	}
}

// shade lights both faces so picked back faces stay visible
func shade(base color.RGBA, normal, light geometry.Vector3) color.RGBA {
	intensity := 0.35 + 0.65*math.Abs(normal.Dot(light))
	return scaleColor(base, intensity)
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*f)))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// fillTriangleWithDepth fills a triangle with depth testing
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	vertices := [3][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 = vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 = vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 = vertices[2][0], vertices[2][1], vertices[2][2]

	if y3 == y1 {
		return
	}

	bounds := img.Bounds()
	width := bounds.Dx()

	for y := int(math.Max(0, math.Ceil(y1))); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		// The long edge 1-3 always spans the scanline; pair it with whichever
		// short edge does
		t := (fy - y1) / (y3 - y1)
		xa, za := x1+t*(x3-x1), z1+t*(z3-z1)

		var xb, zb float64
		switch {
		case fy < y2 && y2 != y1:
			t = (fy - y1) / (y2 - y1)
			xb, zb = x1+t*(x2-x1), z1+t*(z2-z1)
		case y3 != y2:
			t = (fy - y2) / (y3 - y2)
			xb, zb = x2+t*(x3-x2), z2+t*(z3-z2)
		default:
			xb, zb = x2, z2
		}

		if xa > xb {
			xa, xb = xb, xa
			za, zb = zb, za
		}

		xStart := int(math.Max(0, math.Ceil(xa)))
		xEnd := int(math.Min(float64(bounds.Max.X-1), xb))
		for x := xStart; x <= xEnd; x++ {
			s := 0.0
			if xb != xa {
				s = (float64(x) - xa) / (xb - xa)
			}
			z := za + s*(zb-za)

			idx := y*width + x
			if idx >= 0 && idx < len(zbuffer) && z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
