package measurement

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextMeasurer reports the pixel size of a label at a font size
type TextMeasurer interface {
	MeasureText(text string, size float64) (width, height float64)
}

// BasicMeasurer measures with the fixed 7x13 bitmap face scaled to size.
// The zero value is ready to use.
type BasicMeasurer struct{}

func (BasicMeasurer) MeasureText(text string, size float64) (float64, float64) {
	face := basicfont.Face7x13
	scale := size / float64(face.Height)
	w := toFloat(font.MeasureString(face, text))
	return w * scale, size
}

// FaceMeasurer measures with the Go Regular TrueType font
type FaceMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFaceMeasurer parses the embedded Go Regular font
func NewFaceMeasurer() (*FaceMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FaceMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

func (m *FaceMeasurer) MeasureText(text string, size float64) (float64, float64) {
	face, err := m.Face(size)
	if err != nil {
		return BasicMeasurer{}.MeasureText(text, size)
	}
	metrics := face.Metrics()
	return toFloat(font.MeasureString(face, text)), toFloat(metrics.Ascent + metrics.Descent)
}

// Face returns the cached face for size, creating it on first use
func (m *FaceMeasurer) Face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face at %.1fpx: %w", size, err)
	}
	m.faces[size] = face
	return face, nil
}

// Close releases the cached faces
func (m *FaceMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, face := range m.faces {
		face.Close()
		delete(m.faces, size)
	}
	return nil
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
