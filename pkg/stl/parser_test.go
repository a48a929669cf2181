package stl

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
)

const squareASCII = `solid square
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

func encodeBinary(t *testing.T, header string, triangles []geometry.Triangle) []byte {
	t.Helper()
	var buf bytes.Buffer
	h := make([]byte, binaryHeaderSize)
	copy(h, header)
	buf.Write(h)
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(triangles))); err != nil {
		t.Fatalf("failed to write count: %v", err)
	}
	for _, tri := range triangles {
		facet := binaryFacet{
			Normal: toFloat32(tri.Normal),
			V1:     toFloat32(tri.V1),
			V2:     toFloat32(tri.V2),
			V3:     toFloat32(tri.V3),
		}
		if err := binary.Write(&buf, binary.LittleEndian, facet); err != nil {
			t.Fatalf("failed to write facet: %v", err)
		}
	}
	return buf.Bytes()
}

func toFloat32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func TestReadASCII(t *testing.T) {
	model, err := Read(strings.NewReader(squareASCII))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if model.Name != "square" {
		t.Errorf("Name failed: expected %q, got %q", "square", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("TriangleCount failed: expected 2, got %d", model.TriangleCount())
	}

	expected := geometry.NewVector3(0, 1, 0)
	if model.Triangles[1].V3 != expected {
		t.Errorf("Vertex failed: expected %v, got %v", expected, model.Triangles[1].V3)
	}
}

func TestReadASCIIRejectsBadVertex(t *testing.T) {
	data := strings.Replace(squareASCII, "vertex 1 0 0", "vertex 1 zero 0", 1)

	if _, err := Read(strings.NewReader(data)); err == nil {
		t.Errorf("Read failed: expected error for malformed vertex")
	}
}

func TestReadBinary(t *testing.T) {
	triangles := []geometry.Triangle{
		geometry.NewTriangle(
			geometry.NewVector3(0, 0, 1),
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(2, 0, 0),
			geometry.NewVector3(0, 2, 0),
		),
	}

	// Header deliberately starts with "solid" like many exporters write.
	data := encodeBinary(t, "solid binary part", triangles)

	model, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if model.TriangleCount() != 1 {
		t.Fatalf("TriangleCount failed: expected 1, got %d", model.TriangleCount())
	}
	if model.Triangles[0] != triangles[0] {
		t.Errorf("Triangle failed: expected %v, got %v", triangles[0], model.Triangles[0])
	}
	if model.Name != "solid binary part" {
		t.Errorf("Name failed: expected %q, got %q", "solid binary part", model.Name)
	}
}

func TestReadBinaryTruncated(t *testing.T) {
	data := encodeBinary(t, "part", []geometry.Triangle{{}, {}})

	if _, err := Read(bytes.NewReader(data[:len(data)-10])); err == nil {
		t.Errorf("Read failed: expected error for truncated data")
	}
}

func TestIndexedWeldsSharedCorners(t *testing.T) {
	model, err := Read(strings.NewReader(squareASCII))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	indexed := model.Indexed()

	if len(indexed.Points) != 4 {
		t.Errorf("Points failed: expected 4, got %d", len(indexed.Points))
	}
	expected := [][3]int{{0, 1, 2}, {0, 2, 3}}
	for i, face := range expected {
		if indexed.Faces[i] != face {
			t.Errorf("Face %d failed: expected %v, got %v", i, face, indexed.Faces[i])
		}
	}
	if indexed.Normals[0] != geometry.NewVector3(0, 0, 1) {
		t.Errorf("Normal failed: expected (0, 0, 1), got %v", indexed.Normals[0])
	}
}
