package viewer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// square is the z=0 unit square
func square() *geometry.Mesh {
	return &geometry.Mesh{
		Positions: []geometry.Vector3{
			geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(1, 1, 0), geometry.NewVector3(0, 1, 0),
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestSceneAddLaysOutAlongX(t *testing.T) {
	var s Scene
	a := s.Add("a", square(), 0.5)
	b := s.Add("b", square(), 0.5)

	if !a.Transform.IsIdentity() {
		t.Errorf("first surface moved")
	}
	got := b.Transform.Point(geometry.NewVector3(0, 0, 0))
	if math.Abs(got.X-1.5) > 1e-10 {
		t.Errorf("second surface origin at x=%v, want 1.5", got.X)
	}
	bounds := s.Bounds()
	if math.Abs(bounds.Max.X-2.5) > 1e-10 {
		t.Errorf("scene max x = %v, want 2.5", bounds.Max.X)
	}
}

func TestSceneIntersectNearestFirst(t *testing.T) {
	var s Scene
	s.Add("back", square(), 0)
	front := &Surface{ID: "front", Mesh: square(), Transform: geometry.Translation(geometry.NewVector3(0, 0, 1))}
	s.Surfaces = append(s.Surfaces, front)

	ray := geometry.Ray{Origin: geometry.NewVector3(0.25, 0.75, 5), Direction: geometry.NewVector3(0, 0, -1)}
	hits := s.Intersect(ray)

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Surface != "front" || hits[1].Surface != "back" {
		t.Errorf("hit order = %s, %s", hits[0].Surface, hits[1].Surface)
	}
	if math.Abs(hits[0].Distance-4) > 1e-10 {
		t.Errorf("front distance = %v, want 4", hits[0].Distance)
	}
	if hits[0].Mesh != front.Mesh {
		t.Error("hit does not carry its mesh")
	}
}

func TestSceneReplace(t *testing.T) {
	var s Scene
	s.Add("a", square(), 0)
	m := square()

	if !s.Replace("a", m) || s.Surfaces[0].Mesh != m {
		t.Error("Replace did not swap the mesh")
	}
	if s.Replace("missing", m) {
		t.Error("Replace reported success for an unknown surface")
	}
}

func TestSceneReplaceTargetsSameNamedSurface(t *testing.T) {
	var s Scene
	var ids measurement.SurfaceIDs
	s.Add(ids.Next("part.stl"), square(), 0.5)
	second := s.Add(ids.Next("part.stl"), square(), 0.5)
	m := square()

	if !s.Replace(second.ID, m) {
		t.Fatal("Replace did not find the second surface")
	}
	if s.Surfaces[0].Mesh == m || s.Surfaces[1].Mesh != m {
		t.Error("Replace swapped the wrong surface")
	}
}

func TestSceneReset(t *testing.T) {
	var s Scene
	s.Add("a", square(), 0)
	s.Reset()

	if len(s.Surfaces) != 0 || !s.Bounds().Empty() {
		t.Error("Reset left surfaces behind")
	}
}

func TestCasterPicksCenter(t *testing.T) {
	var s Scene
	s.Add("floor", square(), 0)
	cam := NewCamera(s.Bounds())
	caster := &Caster{Scene: &s, Camera: cam, Width: 300, Height: 200}

	hits := caster.CastRay(geometry.NewVector2(150, 100))
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	want := geometry.NewVector3(0.5, 0.5, 0)
	if hits[0].Position.Distance(want) > 1e-9 {
		t.Errorf("hit at %v, want %v", hits[0].Position, want)
	}

	if got := (&Caster{Scene: &s, Camera: cam}).CastRay(geometry.NewVector2(1, 1)); got != nil {
		t.Errorf("zero-size caster returned %v", got)
	}
}

func TestRasterizerDrawsFacingSquare(t *testing.T) {
	var s Scene
	s.Add("floor", square(), 0)
	cam := NewCamera(s.Bounds())
	r := NewRasterizer()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))

	r.Draw(img, &s, cam)

	if img.RGBAAt(32, 32) == r.Background {
		t.Error("center pixel not covered by the square")
	}
	if img.RGBAAt(0, 0) != r.Background {
		t.Error("corner pixel should stay background")
	}
}

func TestPainterCommands(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	p := &Painter{}
	p.Paint(img, []measurement.Command{
		{Kind: measurement.CmdFill, Color: blue, Points: []geometry.Vector2{
			geometry.NewVector2(60, 60), geometry.NewVector2(90, 60), geometry.NewVector2(90, 90), geometry.NewVector2(60, 90),
		}},
		{Kind: measurement.CmdCircle, Center: geometry.NewVector2(20, 20), Radius: 6, Color: red},
		{Kind: measurement.CmdPolyline, Width: 3, Color: red, Points: []geometry.Vector2{
			geometry.NewVector2(10, 50), geometry.NewVector2(50, 50),
		}},
	})

	if got := img.RGBAAt(20, 20); got != red {
		t.Errorf("circle center = %v, want %v", got, red)
	}
	if got := img.RGBAAt(75, 75); got != blue {
		t.Errorf("fill center = %v, want %v", got, blue)
	}
	if got := img.RGBAAt(30, 50); got.R == 0 {
		t.Errorf("polyline pixel = %v, want red coverage", got)
	}
	if got := img.RGBAAt(5, 95); got.A != 0 {
		t.Errorf("untouched pixel = %v", got)
	}
}

func TestPainterLabel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 40))
	bg := color.RGBA{R: 20, G: 20, B: 20, A: 255}
	o := measurement.NewOverlay(measurement.DefaultStyle(), nil)
	cmds := o.Render(measurement.Snapshot{
		Mode:   measurement.ModeLength,
		Points: []geometry.Vector3{geometry.NewVector3(-0.5, -0.5, 0), geometry.NewVector3(0.5, -0.5, 0)},
	}, measurement.ProjectorFunc(func(p geometry.Vector3) (geometry.Vector2, bool) {
		return geometry.NewVector2(p.X, p.Y), true
	}), measurement.Viewport{Width: 120, Height: 40})

	var label measurement.Command
	for _, c := range cmds {
		if c.Kind == measurement.CmdLabel {
			label = c
		}
	}
	if label.Label.Text == "" {
		t.Fatal("no label rendered")
	}

	(&Painter{}).Paint(img, []measurement.Command{label})

	inside := image.Pt(int(label.Label.Box.X)+2, int(label.Label.Box.Y)+2)
	if got := img.RGBAAt(inside.X, inside.Y); got != bg {
		t.Errorf("label background = %v, want %v", got, bg)
	}
}
