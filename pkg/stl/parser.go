package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

var (
	// ErrUnknownFormat is returned for input that is neither ASCII nor binary STL
	ErrUnknownFormat = errors.New("unknown STL format")
	// ErrTruncated is returned when a binary file is shorter than its facet count
	ErrTruncated = errors.New("truncated binary STL")
)

const (
	binaryHeaderSize = 80
	binaryFacetSize  = 50
)

// binaryFacet mirrors the 50-byte on-disk facet record
type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attributes uint16
}

// Parse reads an STL file and returns a Model.
// It detects whether the file is ASCII or binary.
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	model, err := ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return model, nil
}

// ParseReader parses STL data from r. A payload whose size matches its
// binary facet count is binary even when the header starts with "solid".
func ParseReader(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}

	if isBinary(data) {
		return parseBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}
	if len(data) >= binaryHeaderSize+4 {
		return parseBinary(data)
	}
	return nil, ErrUnknownFormat
}

func isBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	return uint64(len(data)) == binaryHeaderSize+4+uint64(count)*binaryFacetSize
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var (
		normal   geometry.Vector3
		vertices []geometry.Vector3
		lineNo   int
	)

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseTriple(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: bad facet normal: %w", lineNo, err)
				}
				normal = v
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs three coordinates", lineNo)
			}
			v, err := parseTriple(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad vertex: %w", lineNo, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) == 3 {
				model.AddTriangle(geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

func parseTriple(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseBinary parses a binary STL payload
func parseBinary(data []byte) (*Model, error) {
	model := NewModel(string(bytes.TrimRight(data[:binaryHeaderSize], "\x00 ")))
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])

	body := data[binaryHeaderSize+4:]
	if uint64(len(body)) < uint64(count)*binaryFacetSize {
		return nil, fmt.Errorf("%w: header declares %d facets, payload holds %d",
			ErrTruncated, count, len(body)/binaryFacetSize)
	}

	reader := bytes.NewReader(body)
	model.Triangles = make([]geometry.Triangle, 0, count)
	for i := uint32(0); i < count; i++ {
		var f binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		model.AddTriangle(geometry.NewTriangle(vec(f.Normal), vec(f.V1), vec(f.V2), vec(f.V3)))
	}
	return model, nil
}

func vec(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
