package halfedge

import (
	"fmt"

	"github.com/philipparndt/gohalfedge/pkg/geometry"
)

// edgeKey identifies a directed vertex pair. Undirected lookups store the
// pair with From <= To.
type edgeKey struct {
	From, To int
}

func undirected(i, j int) edgeKey {
	if i > j {
		i, j = j, i
	}
	return edgeKey{From: i, To: j}
}

// Mesh is a finalized half-edge mesh. It is obtained from Builder.Finalize
// and its topology cannot change. Query methods only read the arenas and are
// safe for concurrent use; ComputeNormals and SetPosition are not.
type Mesh struct {
	vertices  []Vertex
	faces     []Face
	edges     []Edge
	halfedges []Halfedge

	halfedgeIndex map[edgeKey]HalfedgeID
	edgeIndex     map[edgeKey]EdgeID
}

func newMesh() *Mesh {
	return &Mesh{
		vertices:      make([]Vertex, 0),
		faces:         make([]Face, 0),
		edges:         make([]Edge, 0),
		halfedges:     make([]Halfedge, 0),
		halfedgeIndex: make(map[edgeKey]HalfedgeID),
		edgeIndex:     make(map[edgeKey]EdgeID),
	}
}

// NumVertices returns the number of vertices including placeholders for
// indices no face references.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int {
	return len(m.faces)
}

// NumEdges returns the number of undirected edges.
func (m *Mesh) NumEdges() int {
	return len(m.edges)
}

// NumHalfedges returns the number of halfedges, always twice NumEdges.
func (m *Mesh) NumHalfedges() int {
	return len(m.halfedges)
}

// Vertex returns a copy of vertex v. It panics if v is out of range.
func (m *Mesh) Vertex(v VertexID) Vertex {
	m.mustVertex(v)
	return m.vertices[v]
}

// Face returns a copy of face f. It panics if f is out of range.
func (m *Mesh) Face(f FaceID) Face {
	m.mustFace(f)
	return m.faces[f]
}

// Edge returns a copy of edge e. It panics if e is out of range.
func (m *Mesh) Edge(e EdgeID) Edge {
	m.mustEdge(e)
	return m.edges[e]
}

// Halfedge returns a copy of halfedge h. It panics if h is out of range.
func (m *Mesh) Halfedge(h HalfedgeID) Halfedge {
	m.mustHalfedge(h)
	return m.halfedges[h]
}

// SetPosition sets the position of vertex v.
func (m *Mesh) SetPosition(v VertexID, p geometry.Vector3) error {
	if !m.hasVertex(v) {
		return fmt.Errorf("vertex %d: %w", v, ErrInvalidHandle)
	}
	m.vertices[v].Position = p
	return nil
}

// Position returns the position of vertex v.
func (m *Mesh) Position(v VertexID) geometry.Vector3 {
	m.mustVertex(v)
	return m.vertices[v].Position
}

// FindHalfedge returns the halfedge pointing from vertex i to vertex j.
func (m *Mesh) FindHalfedge(i, j VertexID) (HalfedgeID, bool) {
	h, ok := m.halfedgeIndex[edgeKey{From: int(i), To: int(j)}]
	if !ok {
		return NoHalfedge, false
	}
	return h, true
}

// FindEdge returns the edge between vertices i and j in either direction.
func (m *Mesh) FindEdge(i, j VertexID) (EdgeID, bool) {
	e, ok := m.edgeIndex[undirected(int(i), int(j))]
	if !ok {
		return NoEdge, false
	}
	return e, true
}

// ForEachVertex calls fn for every vertex in id order.
func (m *Mesh) ForEachVertex(fn func(VertexID, Vertex)) {
	for i, v := range m.vertices {
		fn(VertexID(i), v)
	}
}

// ForEachFace calls fn for every face in insertion order.
func (m *Mesh) ForEachFace(fn func(FaceID, Face)) {
	for i, f := range m.faces {
		fn(FaceID(i), f)
	}
}

// ForEachEdge calls fn for every edge in creation order.
func (m *Mesh) ForEachEdge(fn func(EdgeID, Edge)) {
	for i, e := range m.edges {
		fn(EdgeID(i), e)
	}
}

// ForEachHalfedge calls fn for every halfedge in creation order.
func (m *Mesh) ForEachHalfedge(fn func(HalfedgeID, Halfedge)) {
	for i, h := range m.halfedges {
		fn(HalfedgeID(i), h)
	}
}

func (m *Mesh) hasVertex(v VertexID) bool {
	return v >= 0 && int(v) < len(m.vertices)
}

func (m *Mesh) hasFace(f FaceID) bool {
	return f >= 0 && int(f) < len(m.faces)
}

func (m *Mesh) hasEdge(e EdgeID) bool {
	return e >= 0 && int(e) < len(m.edges)
}

func (m *Mesh) hasHalfedge(h HalfedgeID) bool {
	return h >= 0 && int(h) < len(m.halfedges)
}

func (m *Mesh) mustVertex(v VertexID) {
	if !m.hasVertex(v) {
		panic(fmt.Sprintf("halfedge: vertex %d out of range [0, %d)", v, len(m.vertices)))
	}
}

func (m *Mesh) mustFace(f FaceID) {
	if !m.hasFace(f) {
		panic(fmt.Sprintf("halfedge: face %d out of range [0, %d)", f, len(m.faces)))
	}
}

func (m *Mesh) mustEdge(e EdgeID) {
	if !m.hasEdge(e) {
		panic(fmt.Sprintf("halfedge: edge %d out of range [0, %d)", e, len(m.edges)))
	}
}

func (m *Mesh) mustHalfedge(h HalfedgeID) {
	if !m.hasHalfedge(h) {
		panic(fmt.Sprintf("halfedge: halfedge %d out of range [0, %d)", h, len(m.halfedges)))
	}
}
