package measurement

import "github.com/philipparndt/gomeasure/pkg/geometry"

// Rect is a screen-space rectangle in pixels
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p geometry.Vector2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Anchoring of a label box relative to its anchor point
type anchoring int

const (
	anchorCenter anchoring = iota
	anchorAbove
)

// Label is a laid out measurement text with its opaque background box
type Label struct {
	Text   string
	Box    Rect
	TextAt geometry.Vector2 // top-left of the text
	Size   float64
}

func layoutLabel(text string, anchor geometry.Vector2, how anchoring, style Style, m TextMeasurer) Label {
	w, h := m.MeasureText(text, style.FontSize)
	pad := style.LabelPadding

	box := Rect{
		X:      anchor.X - w/2 - pad,
		Y:      anchor.Y - h/2 - pad,
		Width:  w + 2*pad,
		Height: h + 2*pad,
	}
	if how == anchorAbove {
		box.Y = anchor.Y - style.LabelLift - box.Height
	}
	return Label{
		Text:   text,
		Box:    box,
		TextAt: geometry.Vector2{X: box.X + pad, Y: box.Y + pad},
		Size:   style.FontSize,
	}
}
