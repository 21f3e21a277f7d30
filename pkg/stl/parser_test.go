package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"
)

const asciiSquare = `solid square
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 1 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid square
`

func binarySTL(header string, facets []binaryFacet, declared uint32) []byte {
	var buf bytes.Buffer
	h := make([]byte, binaryHeaderSize)
	copy(h, header)
	buf.Write(h)
	binary.Write(&buf, binary.LittleEndian, declared)
	for _, f := range facets {
		binary.Write(&buf, binary.LittleEndian, f)
	}
	return buf.Bytes()
}

func squareFacets() []binaryFacet {
	return []binaryFacet{
		{Normal: [3]float32{0, 0, 1}, V1: [3]float32{0, 0, 0}, V2: [3]float32{1, 0, 0}, V3: [3]float32{1, 1, 0}},
		{Normal: [3]float32{0, 0, 1}, V1: [3]float32{0, 0, 0}, V2: [3]float32{1, 1, 0}, V3: [3]float32{0, 1, 0}},
	}
}

func TestParseASCII(t *testing.T) {
	model, err := ParseReader(strings.NewReader(asciiSquare))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if model.Name != "square" {
		t.Errorf("Name: expected square, got %q", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("TriangleCount: expected 2, got %d", model.TriangleCount())
	}
	if math.Abs(model.SurfaceArea()-1) > 1e-10 {
		t.Errorf("SurfaceArea: expected 1, got %v", model.SurfaceArea())
	}
	if n := len(model.Vertices()); n != 4 {
		t.Errorf("Vertices: expected 4 distinct, got %d", n)
	}
}

func TestParseASCIIRejectsBadNumbers(t *testing.T) {
	bad := strings.Replace(asciiSquare, "vertex 1 0 0", "vertex 1 zero 0", 1)
	if _, err := ParseReader(strings.NewReader(bad)); err == nil {
		t.Error("expected an error for a malformed vertex")
	}
}

func TestParseBinary(t *testing.T) {
	data := binarySTL("solid looks like ascii", squareFacets(), 2)

	model, err := ParseReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("TriangleCount: expected 2, got %d", model.TriangleCount())
	}
	box := model.BoundingBox()
	if box.Size().X != 1 || box.Size().Y != 1 || box.Size().Z != 0 {
		t.Errorf("BoundingBox size: got %v", box.Size())
	}
}

func TestParseBinaryTruncated(t *testing.T) {
	data := binarySTL("part", squareFacets()[:1], 2)

	_, err := ParseReader(bytes.NewReader(data))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := ParseReader(strings.NewReader("hello"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
