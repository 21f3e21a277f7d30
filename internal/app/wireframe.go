package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

var wireframeColor = rl.NewColor(100, 100, 100, 200)

type edgeKey [2]geometry.Vector3

func makeEdgeKey(a, b geometry.Vector3) edgeKey {
	if a.X > b.X || (a.X == b.X && (a.Y > b.Y || (a.Y == b.Y && a.Z > b.Z))) {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// uniqueEdges returns every triangle edge once, in world space
func uniqueEdges(m *geometry.Mesh, xf geometry.Transform) [][2]geometry.Vector3 {
	seen := make(map[edgeKey]bool)
	var edges [][2]geometry.Vector3
	for _, t := range m.Triangles() {
		for _, e := range t.Edges() {
			k := makeEdgeKey(e[0], e[1])
			if seen[k] {
				continue
			}
			seen[k] = true
			edges = append(edges, [2]geometry.Vector3{xf.Point(e[0]), xf.Point(e[1])})
		}
	}
	return edges
}

// drawWireframe renders the edges of one surface
func (app *App) drawWireframe(s *surface) {
	for _, e := range s.edges {
		rl.DrawLine3D(toRL(e[0]), toRL(e[1]), wireframeColor)
	}
}
