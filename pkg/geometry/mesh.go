package geometry

// Mesh is indexed triangle geometry in local space. When Indices is empty
// every three consecutive positions form a triangle.
type Mesh struct {
	Positions []Vector3
	Indices   []uint32
}

// MeshFromTriangles builds an indexed mesh, sharing identical corners
func MeshFromTriangles(triangles []Triangle) *Mesh {
	m := &Mesh{
		Positions: make([]Vector3, 0, len(triangles)),
		Indices:   make([]uint32, 0, len(triangles)*3),
	}
	seen := make(map[Vector3]uint32, len(triangles))
	for _, tri := range triangles {
		for _, v := range tri.Vertices() {
			idx, ok := seen[v]
			if !ok {
				idx = uint32(len(m.Positions))
				seen[v] = idx
				m.Positions = append(m.Positions, v)
			}
			m.Indices = append(m.Indices, idx)
		}
	}
	return m
}

// TriangleCount returns the number of complete triangles
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

// Triangle returns the i-th triangle with its computed normal
func (m *Mesh) Triangle(i int) Triangle {
	var a, b, c Vector3
	if len(m.Indices) > 0 {
		a = m.Positions[m.Indices[i*3]]
		b = m.Positions[m.Indices[i*3+1]]
		c = m.Positions[m.Indices[i*3+2]]
	} else {
		a, b, c = m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]
	}
	tri := Triangle{V1: a, V2: b, V3: c}
	tri.Normal = tri.CalculateNormal()
	return tri
}

// Triangles expands the mesh into facets
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, m.TriangleCount())
	for i := range out {
		out[i] = m.Triangle(i)
	}
	return out
}

// Bounds returns the local-space bounding box
func (m *Mesh) Bounds() BoundingBox {
	box := NewBoundingBox()
	if m == nil {
		return box
	}
	for _, p := range m.Positions {
		box.Extend(p)
	}
	return box
}

// AverageEdgeLength estimates vertex spacing from at most sample triangles
func (m *Mesh) AverageEdgeLength(sample int) float64 {
	n := m.TriangleCount()
	if n == 0 {
		return 0
	}
	if sample > 0 && sample < n {
		n = sample
	}
	total := 0.0
	for i := 0; i < n; i++ {
		l := m.Triangle(i).EdgeLengths()
		total += l[0] + l[1] + l[2]
	}
	return total / float64(n*3)
}
