package stl

import (
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		for _, v := range triangle.Vertices() {
			bbox.Extend(v)
		}
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for _, triangle := range m.Triangles {
		total += triangle.Area()
	}
	return total
}

// Vertices returns the distinct corner positions in first-seen order
func (m *Model) Vertices() []geometry.Vector3 {
	return m.Mesh().Positions
}

// Mesh converts the facet list into indexed geometry for picking and snapping
func (m *Model) Mesh() *geometry.Mesh {
	return geometry.MeshFromTriangles(m.Triangles)
}
