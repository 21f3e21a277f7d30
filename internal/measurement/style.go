package measurement

import "image/color"

// Style holds the overlay's sizes in pixels and its colors
type Style struct {
	MarkerRadius float64
	LineWidth    float64
	ArcRadius    float64
	// LabelOffset is the distance of the angle label from the vertex along
	// the bisector
	LabelOffset float64
	// LabelLift raises length labels above the segment midpoint
	LabelLift    float64
	FontSize     float64
	LabelPadding float64

	CommittedMarker color.RGBA
	PreviewMarker   color.RGBA
	FinalStroke     color.RGBA
	PreviewStroke   color.RGBA
	ArcStroke       color.RGBA
	AreaFill        color.RGBA
	AreaOutline     color.RGBA
	LabelText       color.RGBA
	LabelBackground color.RGBA
	LabelBorder     color.RGBA
}

// DefaultStyle returns the stock overlay look
func DefaultStyle() Style {
	return Style{
		MarkerRadius: 6,
		LineWidth:    2,
		ArcRadius:    40,
		LabelOffset:  50,
		LabelLift:    5,
		FontSize:     16,
		LabelPadding: 4,

		CommittedMarker: color.RGBA{R: 255, A: 178},
		PreviewMarker:   color.RGBA{G: 200, B: 255, A: 204},
		FinalStroke:     color.RGBA{R: 255, G: 255, A: 255},
		PreviewStroke:   color.RGBA{R: 255, G: 165, A: 255},
		ArcStroke:       color.RGBA{G: 255, B: 255, A: 255},
		AreaFill:        color.RGBA{G: 200, B: 255, A: 77},
		AreaOutline:     color.RGBA{R: 255, G: 165, A: 255},
		LabelText:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LabelBackground: color.RGBA{R: 20, G: 20, B: 20, A: 255},
		LabelBorder:     color.RGBA{R: 90, G: 90, B: 90, A: 255},
	}
}
