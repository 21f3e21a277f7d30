package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

// EdgeInfo contains information about an edge in the model
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// ModelReport summarizes an STL model for the info command and the viewer panel
type ModelReport struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	TriangleCount int
	VertexCount   int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// SurfaceAreaSquareFeet converts the surface area to display units
func (r *ModelReport) SurfaceAreaSquareFeet() float64 {
	return r.SurfaceArea * SquareMetersToSquareFeet
}

// DiagonalFeet converts the bounding box diagonal to display units
func (r *ModelReport) DiagonalFeet() float64 {
	return r.BoundingBox.Diagonal() * MetersToFeet
}

// AnalyzeModel collects size and edge statistics for a model
func AnalyzeModel(model *stl.Model) *ModelReport {
	report := &ModelReport{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
		VertexCount:   len(model.Vertices()),
	}
	report.Dimensions = report.BoundingBox.Size()
	report.Volume = report.BoundingBox.Volume()

	minLength := math.MaxFloat64
	total := 0.0
	for i, tri := range model.Triangles {
		for _, edge := range tri.Edges() {
			length := edge[0].Distance(edge[1])
			report.AllEdges = append(report.AllEdges, EdgeInfo{
				Start:      edge[0],
				End:        edge[1],
				Length:     length,
				TriangleID: i,
			})
			total += length
			minLength = math.Min(minLength, length)
			report.MaxEdgeLength = math.Max(report.MaxEdgeLength, length)
		}
	}

	report.EdgeCount = len(report.AllEdges)
	if report.EdgeCount > 0 {
		report.MinEdgeLength = minLength
		report.AvgEdgeLength = total / float64(report.EdgeCount)
	}
	return report
}

// LongestEdges returns the count longest edges in the model
func (r *ModelReport) LongestEdges(count int) []EdgeInfo {
	edges := make([]EdgeInfo, len(r.AllEdges))
	copy(edges, r.AllEdges)
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})
	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestVertex finds the model vertex nearest to a point. The bool is
// false for an empty model.
func FindNearestVertex(model *stl.Model, point geometry.Vector3) (geometry.Vector3, float64, bool) {
	var nearest geometry.Vector3
	minDistance := math.MaxFloat64
	found := false

	for _, v := range model.Vertices() {
		if d := point.Distance(v); d < minDistance {
			minDistance, nearest, found = d, v, true
		}
	}
	return nearest, minDistance, found
}

// FormatVector formats a 3D vector for reports
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
