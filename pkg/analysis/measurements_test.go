package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

func squareModel() *stl.Model {
	m := stl.NewModel("square")
	n := geometry.NewVector3(0, 0, 1)
	m.AddTriangle(geometry.NewTriangle(n, geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 0, 0), geometry.NewVector3(2, 2, 0)))
	m.AddTriangle(geometry.NewTriangle(n, geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 2, 0), geometry.NewVector3(0, 2, 0)))
	return m
}

func TestAnalyzeModel(t *testing.T) {
	report := AnalyzeModel(squareModel())

	if report.TriangleCount != 2 || report.EdgeCount != 6 || report.VertexCount != 4 {
		t.Errorf("counts: triangles=%d edges=%d vertices=%d", report.TriangleCount, report.EdgeCount, report.VertexCount)
	}
	if math.Abs(report.SurfaceArea-4) > 1e-10 {
		t.Errorf("SurfaceArea: expected 4, got %v", report.SurfaceArea)
	}
	if math.Abs(report.SurfaceAreaSquareFeet()-4*SquareMetersToSquareFeet) > 1e-10 {
		t.Errorf("SurfaceAreaSquareFeet: got %v", report.SurfaceAreaSquareFeet())
	}
	if math.Abs(report.MaxEdgeLength-2*math.Sqrt2) > 1e-10 || math.Abs(report.MinEdgeLength-2) > 1e-10 {
		t.Errorf("edge range: min=%v max=%v", report.MinEdgeLength, report.MaxEdgeLength)
	}
	longest := report.LongestEdges(1)
	if len(longest) != 1 || math.Abs(longest[0].Length-2*math.Sqrt2) > 1e-10 {
		t.Errorf("LongestEdges: got %v", longest)
	}
}

func TestAnalyzeEmptyModel(t *testing.T) {
	report := AnalyzeModel(stl.NewModel("empty"))
	if report.EdgeCount != 0 || report.MinEdgeLength != 0 || report.AvgEdgeLength != 0 {
		t.Errorf("empty model should have zero edge stats: %+v", report)
	}
}

func TestFindNearestVertex(t *testing.T) {
	v, d, ok := FindNearestVertex(squareModel(), geometry.NewVector3(1.9, 2.2, 0))
	if !ok {
		t.Fatal("expected a vertex")
	}
	if v != geometry.NewVector3(2, 2, 0) {
		t.Errorf("expected (2,2,0), got %v", v)
	}
	if math.Abs(d-math.Hypot(0.1, 0.2)) > 1e-10 {
		t.Errorf("distance: got %v", d)
	}

	if _, _, ok := FindNearestVertex(stl.NewModel(""), geometry.Vector3{}); ok {
		t.Error("empty model has no nearest vertex")
	}
}
