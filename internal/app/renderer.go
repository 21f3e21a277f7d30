package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// meshToRaylib uploads a mesh with lighting baked into the vertex colors.
// Triangles are unrolled so every corner carries its facet normal.
func meshToRaylib(m *geometry.Mesh, base rl.Color) rl.Mesh {
	triangleCount := m.TriangleCount()
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	idx := 0
	for i := 0; i < triangleCount; i++ {
		triangle := m.Triangle(i)
		normal := triangle.CalculateNormal()

		// at least 30% ambient
		intensity := math.Max(0.3, -normal.Dot(lightDir))
		r := uint8(float64(base.R) * intensity)
		g := uint8(float64(base.G) * intensity)
		b := uint8(float64(base.B) * intensity)

		for _, v := range triangle.Vertices() {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			colors[idx*4+0] = r
			colors[idx*4+1] = g
			colors[idx*4+2] = b
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}

// toMatrix converts a transform to raylib's column-major float32 matrix
func toMatrix(t geometry.Transform) rl.Matrix {
	m := t.Matrix()
	return rl.Matrix{
		M0: float32(m[0]), M4: float32(m[4]), M8: float32(m[8]), M12: float32(m[12]),
		M1: float32(m[1]), M5: float32(m[5]), M9: float32(m[9]), M13: float32(m[13]),
		M2: float32(m[2]), M6: float32(m[6]), M10: float32(m[10]), M14: float32(m[14]),
		M3: float32(m[3]), M7: float32(m[7]), M11: float32(m[11]), M15: float32(m[15]),
	}
}

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRL(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}

// drawScene draws every surface inside BeginMode3D
func (app *App) drawScene() {
	for _, s := range app.Scene.surfaces {
		if app.View.showFilled {
			rl.DrawMesh(s.mesh, app.Scene.material, s.matrix)
		}
		if app.View.showWireframe {
			app.drawWireframe(s)
		}
	}
}
