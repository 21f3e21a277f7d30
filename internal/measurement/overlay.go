package measurement

import (
	"image/color"
	"math"

	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Projector maps a world point to normalized device coordinates. ok is false
// for points behind the camera.
type Projector interface {
	Project(world geometry.Vector3) (ndc geometry.Vector2, ok bool)
}

// ProjectorFunc adapts a function to Projector
type ProjectorFunc func(world geometry.Vector3) (geometry.Vector2, bool)

func (f ProjectorFunc) Project(world geometry.Vector3) (geometry.Vector2, bool) {
	return f(world)
}

// Viewport is the drawing surface size in pixels
type Viewport struct {
	Width, Height float64
}

// ToPixels converts NDC to pixels with the origin at the top-left
func (v Viewport) ToPixels(ndc geometry.Vector2) geometry.Vector2 {
	return geometry.Vector2{
		X: (ndc.X + 1) / 2 * v.Width,
		Y: (1 - ndc.Y) / 2 * v.Height,
	}
}

// CommandKind selects the primitive a Command draws
type CommandKind int

const (
	// CmdFill fills the polygon in Points
	CmdFill CommandKind = iota
	// CmdPolyline strokes Points, joining the last to the first when Closed
	CmdPolyline
	// CmdArc strokes an arc of Radius around Center from Start through Sweep
	CmdArc
	// CmdCircle fills a disc of Radius around Center
	CmdCircle
	// CmdLabel draws Label over an opaque box
	CmdLabel
)

func (k CommandKind) String() string {
	switch k {
	case CmdFill:
		return "fill"
	case CmdPolyline:
		return "polyline"
	case CmdArc:
		return "arc"
	case CmdCircle:
		return "circle"
	default:
		return "label"
	}
}

// Command is one screen-space draw instruction. Angles are radians measured
// from +X toward +Y in pixel space.
type Command struct {
	Kind    CommandKind
	Points  []geometry.Vector2
	Closed  bool
	Center  geometry.Vector2
	Radius  float64
	Start   float64
	Sweep   float64 // signed, within [-π, π]
	Width   float64
	Color   color.RGBA
	Preview bool
	Label   Label
	// Border is the label box outline color
	Border color.RGBA
	// Background is the label box fill color
	Background color.RGBA
}

// Overlay turns a snapshot into draw commands. It holds no measurement state,
// so rendering the same snapshot twice yields the same commands.
type Overlay struct {
	Style Style
	Text  TextMeasurer
}

// NewOverlay returns an overlay. A nil measurer uses BasicMeasurer.
func NewOverlay(style Style, text TextMeasurer) *Overlay {
	if text == nil {
		text = BasicMeasurer{}
	}
	return &Overlay{Style: style, Text: text}
}

// Render draws fills first, then strokes and arcs, then markers, then labels
func (o *Overlay) Render(s Snapshot, proj Projector, vp Viewport) []Command {
	f := frame{o: o, proj: proj, vp: vp}
	switch s.Mode {
	case ModeLength:
		f.length(s)
	case ModeAngle:
		f.angle(s)
	case ModeArea:
		f.area(s)
	}
	f.markers(s)

	out := make([]Command, 0, len(f.fills)+len(f.strokes)+len(f.arcs)+len(f.dots)+len(f.labels))
	out = append(out, f.fills...)
	out = append(out, f.strokes...)
	out = append(out, f.arcs...)
	out = append(out, f.dots...)
	out = append(out, f.labels...)
	return out
}

type frame struct {
	o    *Overlay
	proj Projector
	vp   Viewport

	fills, strokes, arcs, dots, labels []Command
}

func (f *frame) project(p geometry.Vector3) (geometry.Vector2, bool) {
	if f.proj == nil {
		return geometry.Vector2{}, false
	}
	ndc, ok := f.proj.Project(p)
	if !ok || math.IsNaN(ndc.X) || math.IsNaN(ndc.Y) {
		return geometry.Vector2{}, false
	}
	return f.vp.ToPixels(ndc), true
}

func (f *frame) projectAll(points []geometry.Vector3) ([]geometry.Vector2, bool) {
	out := make([]geometry.Vector2, len(points))
	for i, p := range points {
		sp, ok := f.project(p)
		if !ok {
			return nil, false
		}
		out[i] = sp
	}
	return out, true
}

func (f *frame) segment(a, b geometry.Vector3, preview bool) {
	pts, ok := f.projectAll([]geometry.Vector3{a, b})
	if !ok {
		return
	}
	c := f.o.Style.FinalStroke
	if preview {
		c = f.o.Style.PreviewStroke
	}
	f.strokes = append(f.strokes, Command{
		Kind:    CmdPolyline,
		Points:  pts,
		Width:   f.o.Style.LineWidth,
		Color:   c,
		Preview: preview,
	})
}

func (f *frame) label(r analysis.Reading, anchor geometry.Vector2, how anchoring, preview bool) {
	st := f.o.Style
	f.labels = append(f.labels, Command{
		Kind:       CmdLabel,
		Label:      layoutLabel(r.String(), anchor, how, st, f.o.Text),
		Color:      st.LabelText,
		Background: st.LabelBackground,
		Border:     st.LabelBorder,
		Preview:    preview,
	})
}

func (f *frame) length(s Snapshot) {
	var a, b geometry.Vector3
	preview := false
	switch {
	case len(s.Points) >= 2:
		a, b = s.Points[0], s.Points[1]
	case len(s.Points) == 1 && s.Preview != nil:
		a, b, preview = s.Points[0], *s.Preview, true
	default:
		return
	}

	f.segment(a, b, preview)
	pa, okA := f.project(a)
	pb, okB := f.project(b)
	if !okA || !okB {
		return
	}
	mid := pa.Add(pb).Mul(0.5)
	f.label(analysis.Measure(analysis.QuantityLength, []geometry.Vector3{a, b}), mid, anchorAbove, preview)
}

func (f *frame) angle(s Snapshot) {
	pts := s.Displayed()
	n := len(s.Points)
	if n == 0 || len(pts) < 2 {
		return
	}

	f.segment(pts[0], pts[1], n < 2)
	if len(pts) < 3 {
		return
	}
	f.segment(pts[1], pts[2], n < 3)

	a, b, c := pts[0], pts[1], pts[2]
	preview := n < 3
	reading := analysis.Measure(analysis.QuantityAngle, []geometry.Vector3{a, b, c})

	sp, ok := f.projectAll([]geometry.Vector3{a, b, c})
	if !ok {
		return
	}
	vertex := sp[1]
	ba, bc := sp[0].Sub(vertex), sp[2].Sub(vertex)
	if ba.Length() == 0 || bc.Length() == 0 {
		f.label(reading, vertex, anchorCenter, preview)
		return
	}

	st := f.o.Style
	start, sweep := ArcAngles(ba, bc)
	f.arcs = append(f.arcs, Command{
		Kind:    CmdArc,
		Center:  vertex,
		Radius:  st.ArcRadius,
		Start:   start,
		Sweep:   sweep,
		Width:   st.LineWidth,
		Color:   st.ArcStroke,
		Preview: preview,
	})

	mid := start + sweep/2
	at := vertex.Add(geometry.Vector2{X: math.Cos(mid), Y: math.Sin(mid)}.Mul(st.LabelOffset))
	f.label(reading, at, anchorCenter, preview)
}

// ArcAngles returns the direction of ba and the signed sweep that turns it
// onto bc through the smaller angle
func ArcAngles(ba, bc geometry.Vector2) (start, sweep float64) {
	return ba.Angle(), math.Atan2(ba.Cross(bc), ba.Dot(bc))
}

func (f *frame) area(s Snapshot) {
	pts := s.Displayed()
	if len(pts) < 2 {
		return
	}
	sp, ok := f.projectAll(pts)
	if !ok {
		return
	}
	st := f.o.Style
	preview := s.Preview != nil

	if len(pts) >= 3 {
		f.fills = append(f.fills, Command{
			Kind:    CmdFill,
			Points:  sp,
			Color:   st.AreaFill,
			Preview: preview,
		})
	}
	f.strokes = append(f.strokes, Command{
		Kind:    CmdPolyline,
		Points:  sp,
		Closed:  len(s.Points) >= 3,
		Width:   st.LineWidth,
		Color:   st.AreaOutline,
		Preview: preview,
	})

	if len(pts) < 3 {
		return
	}
	center, ok := f.project(geometry.Centroid(pts))
	if !ok {
		return
	}
	f.label(s.LiveReading(), center, anchorCenter, preview)
}

func (f *frame) markers(s Snapshot) {
	st := f.o.Style
	for _, p := range s.Points {
		if sp, ok := f.project(p); ok {
			f.dots = append(f.dots, Command{Kind: CmdCircle, Center: sp, Radius: st.MarkerRadius, Color: st.CommittedMarker})
		}
	}
	if s.Preview != nil {
		if sp, ok := f.project(*s.Preview); ok {
			f.dots = append(f.dots, Command{Kind: CmdCircle, Center: sp, Radius: st.MarkerRadius, Color: st.PreviewMarker, Preview: true})
		}
	}
}
