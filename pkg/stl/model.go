package stl

import (
	"github.com/philipparndt/gohalfedge/pkg/geometry"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// IndexedModel is a model whose triangles share welded vertices
type IndexedModel struct {
	Points []geometry.Vector3
	// Faces holds three indices into Points per triangle, in file order.
	Faces [][3]int
	// Normals holds the facet normal of each triangle, recomputed from the
	// winding when the file stored a zero normal.
	Normals []geometry.Vector3
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

// Indexed welds corners with identical coordinates into shared vertices.
// STL stores every triangle separately, so this is what recovers the
// connectivity between neighbouring facets.
func (m *Model) Indexed() *IndexedModel {
	result := &IndexedModel{
		Faces:   make([][3]int, 0, len(m.Triangles)),
		Normals: make([]geometry.Vector3, 0, len(m.Triangles)),
	}
	index := make(map[geometry.Vector3]int)

	lookup := func(p geometry.Vector3) int {
		if i, ok := index[p]; ok {
			return i
		}
		i := len(result.Points)
		index[p] = i
		result.Points = append(result.Points, p)
		return i
	}

	for _, t := range m.Triangles {
		result.Faces = append(result.Faces, [3]int{lookup(t.V1), lookup(t.V2), lookup(t.V3)})
		result.Normals = append(result.Normals, t.FacetNormal())
	}
	return result
}

