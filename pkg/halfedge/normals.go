package halfedge

import (
	"fmt"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
)

// ComputeNormals derives face and vertex normals from the vertex positions.
//
// A face normal is the normalized sum, over every corner, of the cross
// product of the two edge vectors leaving the previous corner. This works
// for non-planar polygons of any degree. A vertex normal is the normalized,
// unweighted sum of the normals of its faces. Isolated vertices get a zero
// normal.
func (m *Mesh) ComputeNormals() error {
	for f := range m.faces {
		n, err := m.faceNormal(FaceID(f))
		if err != nil {
			return err
		}
		m.faces[f].Normal = n
	}

	for v := range m.vertices {
		m.vertices[v].Normal = geometry.Vector3{}
		if m.vertices[v].IsIsolated() {
			continue
		}
		faces, err := m.VertexFaces(VertexID(v))
		if err != nil {
			return fmt.Errorf("failed to compute vertex normal: %w", err)
		}
		var sum geometry.Vector3
		for _, f := range faces {
			sum = sum.Add(m.faces[f].Normal)
		}
		m.vertices[v].Normal = sum.Normalize()
	}
	return nil
}

// FaceNormal returns the normal stored by the last ComputeNormals call.
func (m *Mesh) FaceNormal(f FaceID) geometry.Vector3 {
	m.mustFace(f)
	return m.faces[f].Normal
}

// VertexNormal returns the normal stored by the last ComputeNormals call.
func (m *Mesh) VertexNormal(v VertexID) geometry.Vector3 {
	m.mustVertex(v)
	return m.vertices[v].Normal
}

func (m *Mesh) faceNormal(f FaceID) (geometry.Vector3, error) {
	loop, err := m.FaceHalfedges(f)
	if err != nil {
		return geometry.Vector3{}, fmt.Errorf("failed to compute face normal: %w", err)
	}

	var sum geometry.Vector3
	for _, h := range loop {
		p0 := m.vertices[m.FromVertex(h)].Position
		p1 := m.vertices[m.halfedges[h].Vertex].Position
		p2 := m.vertices[m.halfedges[m.halfedges[h].Next].Vertex].Position

		d1 := p1.Sub(p0)
		d2 := p2.Sub(p0)
		sum = sum.Add(d1.Cross(d2))
	}
	return sum.Normalize(), nil
}

// FaceArea returns the area of f, taken as half the length of the polygon's
// vector area. It is exact for planar polygons.
func (m *Mesh) FaceArea(f FaceID) (float64, error) {
	corners, err := m.FaceVertices(f)
	if err != nil {
		return 0, err
	}
	var sum geometry.Vector3
	for i, v := range corners {
		p := m.vertices[v].Position
		q := m.vertices[corners[(i+1)%len(corners)]].Position
		sum = sum.Add(p.Cross(q))
	}
	return sum.Length() / 2.0, nil
}
